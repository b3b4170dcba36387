package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
	"smartbiz-be/pkg/llm"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestComposeInvoiceCreated(t *testing.T) {
	c := NewComposer(nil, 0)

	result := &tools.Result{
		Status: tools.StatusSuccess,
		Data: map[string]interface{}{
			"invoice_number": "INV-2026-0001",
			"customer_name":  "Acme Corp",
			"subtotal":       5000.0,
			"gst_rate":       18.0,
			"gst_amount":     900.0,
			"total_amount":   5900.0,
		},
	}

	reply := c.Compose(context.Background(), intent.InvoiceCreate, nil, result, nil, "")

	for _, want := range []string{"INV-2026-0001", "Acme Corp", "₹5000.00", "₹900.00", "₹5900.00", "18%"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestComposeToolError(t *testing.T) {
	c := NewComposer(nil, 0)

	result := &tools.Result{
		Status:  tools.StatusError,
		Message: "Please tell me the customer name and amount.",
	}

	reply := c.Compose(context.Background(), intent.InvoiceCreate, nil, result, nil, "")

	if !strings.HasPrefix(reply, "Sorry, I couldn't do that.") {
		t.Errorf("error reply should lead with apology, got: %s", reply)
	}
	if !strings.Contains(reply, "customer name and amount") {
		t.Errorf("error reply should carry the corrective message, got: %s", reply)
	}
}

func TestComposePendingPassesMessageThrough(t *testing.T) {
	c := NewComposer(nil, 0)

	result := &tools.Result{
		Status:  tools.StatusPending,
		Message: "The GST portal is slow right now; I've queued the verification.",
	}

	reply := c.Compose(context.Background(), intent.GstVerify, nil, result, nil, "")

	if reply != result.Message {
		t.Errorf("pending reply = %q, want the tool message verbatim", reply)
	}
}

func TestComposeBusinessSummaryPaymentRate(t *testing.T) {
	c := NewComposer(nil, 0)

	result := &tools.Result{
		Status: tools.StatusSuccess,
		Data: map[string]interface{}{
			"period":         "August 2026",
			"total_revenue":  11800.0,
			"invoice_count":  4,
			"paid_count":     3,
			"customer_count": 2,
		},
	}

	reply := c.Compose(context.Background(), intent.BusinessSummary, nil, result, nil, "")

	if !strings.Contains(reply, "75% payment rate") {
		t.Errorf("expected derived 75%% payment rate, got: %s", reply)
	}
	if !strings.Contains(reply, "August 2026") {
		t.Errorf("expected period in summary, got: %s", reply)
	}
}

func TestComposeChatCannedBeatsModel(t *testing.T) {
	provider := &stubProvider{reply: "model reply"}
	c := NewComposer(provider, 100)

	reply := c.Compose(context.Background(), intent.General, nil, nil, nil, "hello there")

	if provider.calls != 0 {
		t.Errorf("canned greeting should not hit the model, calls = %d", provider.calls)
	}
	if !strings.Contains(reply, "Namaste") {
		t.Errorf("expected canned greeting, got: %s", reply)
	}
}

func TestComposeChatFallsBackToModel(t *testing.T) {
	provider := &stubProvider{reply: "Here's a thought on pricing."}
	c := NewComposer(provider, 100)

	reply := c.Compose(context.Background(), intent.Unknown, nil, nil, nil, "how should I price my services?")

	if provider.calls != 1 {
		t.Fatalf("model calls = %d, want 1", provider.calls)
	}
	if reply != provider.reply {
		t.Errorf("reply = %q, want model reply", reply)
	}
}

func TestComposeChatModelFailureUsesDefault(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	c := NewComposer(provider, 100)

	reply := c.Compose(context.Background(), intent.Unknown, nil, nil, nil, "tell me something")

	if reply != defaultReply {
		t.Errorf("reply = %q, want static default", reply)
	}
}

func TestComposeInvoiceListEmpty(t *testing.T) {
	c := NewComposer(nil, 0)

	result := &tools.Result{
		Status: tools.StatusSuccess,
		Data:   map[string]interface{}{"count": 0},
	}

	reply := c.Compose(context.Background(), intent.InvoiceView, nil, result, nil, "")

	if !strings.Contains(reply, "no invoices yet") {
		t.Errorf("expected empty-state reply, got: %s", reply)
	}
}
