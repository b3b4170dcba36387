package composer

import (
	"context"
	"fmt"
	"strings"

	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
	"smartbiz-be/pkg/llm"
)

const systemPreamble = `You are a helpful business assistant for small Indian businesses. ` +
	`Answer briefly and practically about invoices, GST, Udyam registration and dashboards. ` +
	`Do not invent figures about the user's business.`

const defaultReply = "I'm here to help with invoices, GST and your business. " +
	"Try asking me to create an invoice or check a GST number."

// cannedReplies answer common greetings/help without touching the model.
var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		[]string{"hello", "namaste", "good morning", "good afternoon", "good evening"},
		"Namaste! I'm your business assistant. I can create invoices, check GST numbers and summarise your sales. What would you like to do?",
	},
	{
		[]string{"thank", "thanks"},
		"You're welcome! Let me know if you need anything else for your business.",
	},
	{
		[]string{"who are you", "what can you do", "help"},
		"I can create and list invoices, verify GST numbers, prepare GST return figures and show a summary of your business. Just ask in plain words.",
	},
}

// Composer turns (intent, entities, tool result, retrieved memory) into a
// user-facing reply. Tool-backed intents render deterministic templates;
// general chat falls back to canned replies, then the language model, then
// a static default.
type Composer struct {
	provider  llm.LLMProvider
	maxTokens int
}

func NewComposer(provider llm.LLMProvider, maxTokens int) *Composer {
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Composer{provider: provider, maxTokens: maxTokens}
}

func (c *Composer) Compose(ctx context.Context, it intent.Intent, entities map[string]interface{}, result *tools.Result, memoryContext map[string]interface{}, query string) string {
	if it == intent.General || it == intent.Unknown {
		return c.composeChat(ctx, query)
	}

	if result == nil {
		return defaultReply
	}

	switch result.Status {
	case tools.StatusError:
		return "Sorry, I couldn't do that. " + result.Message
	case tools.StatusPending:
		return result.Message
	}

	switch it {
	case intent.InvoiceCreate:
		return renderInvoiceCreated(result.Data)
	case intent.InvoiceView:
		return renderInvoiceList(result.Data)
	case intent.InvoiceDelete:
		return renderInvoiceDeleted(result.Data)
	case intent.GstVerify:
		return renderGstVerified(result.Data)
	case intent.GstFiling:
		return renderGstFiling(result.Data)
	case intent.BusinessSummary:
		return renderBusinessSummary(result.Data)
	case intent.PreferenceUpdate:
		return renderPreferenceUpdated(result.Data)
	case intent.UdyamLookup:
		return renderUdyamLookup(result.Data)
	case intent.DocumentFetch:
		return result.Message
	default:
		return result.Message
	}
}

func (c *Composer) composeChat(ctx context.Context, query string) string {
	lower := strings.ToLower(query)
	for _, canned := range cannedReplies {
		for _, kw := range canned.keywords {
			if strings.Contains(lower, kw) {
				return canned.reply
			}
		}
	}

	if c.provider != nil {
		history := []llm.Message{
			{Role: "system", Content: systemPreamble},
			{Role: "user", Content: query},
		}
		reply, err := c.provider.Chat(ctx, history, llm.WithMaxTokens(c.maxTokens))
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply
		}
	}

	return defaultReply
}

func renderInvoiceCreated(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Invoice %v created for %v!\n\n", data["invoice_number"], data["customer_name"])
	fmt.Fprintf(&b, "Subtotal: %s\n", rupees(data["subtotal"]))
	fmt.Fprintf(&b, "GST (%v%%): %s\n", data["gst_rate"], rupees(data["gst_amount"]))
	fmt.Fprintf(&b, "Total: %s", rupees(data["total_amount"]))
	return b.String()
}

func renderInvoiceList(data map[string]interface{}) string {
	count, _ := data["count"].(int)
	if count == 0 {
		return "You have no invoices yet. Say \"create invoice for <customer> worth ₹<amount>\" to make one."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Your last %d invoice(s):\n\n", count)
	if lines, ok := data["summaries"].([]string); ok {
		for _, line := range lines {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}
	fmt.Fprintf(&b, "\nTotal value: %s", rupees(data["total_value"]))
	return b.String()
}

func renderInvoiceDeleted(data map[string]interface{}) string {
	if count, ok := data["deleted_count"].(int64); ok && count != 1 {
		return fmt.Sprintf("🗑️ Deleted %d invoices.", count)
	}
	if number, ok := data["invoice_number"].(string); ok {
		return fmt.Sprintf("🗑️ Invoice %s deleted.", number)
	}
	return "🗑️ Invoice deleted."
}

func renderGstVerified(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ GSTIN %v is valid.\n\n", data["gstin"])
	fmt.Fprintf(&b, "Registered name: %v\n", data["legal_name"])
	fmt.Fprintf(&b, "State: %v\n", data["state"])
	fmt.Fprintf(&b, "Status: %v", data["status"])
	return b.String()
}

func renderGstFiling(data map[string]interface{}) string {
	totalSales := toFloat(data["total_sales"])
	totalTax := toFloat(data["total_tax"])

	var b strings.Builder
	b.WriteString("📊 GST return figures")
	if period, ok := data["period"].(string); ok && period != "" {
		fmt.Fprintf(&b, " for %s", period)
	}
	b.WriteString(":\n\n")
	fmt.Fprintf(&b, "Total sales: %s\n", rupees(totalSales))
	fmt.Fprintf(&b, "GST collected: %s\n", rupees(totalTax))
	fmt.Fprintf(&b, "Taxable value: %s", rupees(totalSales-totalTax))
	return b.String()
}

func renderBusinessSummary(data map[string]interface{}) string {
	total := toFloat(data["invoice_count"])
	paid := toFloat(data["paid_count"])
	paymentRate := 0.0
	if total > 0 {
		paymentRate = paid / total * 100
	}

	var b strings.Builder
	b.WriteString("📈 Business summary")
	if period, ok := data["period"].(string); ok && period != "" {
		fmt.Fprintf(&b, " for %s", period)
	}
	b.WriteString(":\n\n")
	fmt.Fprintf(&b, "Revenue: %s\n", rupees(data["total_revenue"]))
	fmt.Fprintf(&b, "Invoices: %d (%d paid, %.0f%% payment rate)\n", int(total), int(paid), paymentRate)
	fmt.Fprintf(&b, "Customers: %d", int(toFloat(data["customer_count"])))
	return b.String()
}

func renderPreferenceUpdated(data map[string]interface{}) string {
	if lang, ok := data["language"].(string); ok {
		return fmt.Sprintf("✅ Done! I'll reply in %s from now on.", lang)
	}
	return "✅ Preferences updated."
}

func renderUdyamLookup(data map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Udyam registration %v found.\n\n", data["udyam_number"])
	fmt.Fprintf(&b, "Enterprise: %v\n", data["enterprise_name"])
	fmt.Fprintf(&b, "Type: %v", data["enterprise_type"])
	return b.String()
}

func rupees(v interface{}) string {
	return fmt.Sprintf("₹%.2f", toFloat(v))
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
