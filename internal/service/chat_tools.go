package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/pkg/ai/extractor"
	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
	"smartbiz-be/pkg/digilocker"
	"smartbiz-be/pkg/udyam"
)

// NewToolRouter binds each actionable intent to the service that executes it.
func NewToolRouter(
	invoiceService IInvoiceService,
	gstService IGstService,
	dashboardService IDashboardService,
	udyamClient udyam.Client,
	digilockerClient digilocker.Client,
) *tools.Router {
	router := tools.NewRouter()

	router.Register(intent.InvoiceCreate, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		customerName, _ := entities[extractor.KeyCustomerName].(string)
		if customerName == "" {
			return tools.Error("I need a customer name. Try \"create invoice for Acme Corp worth ₹5000\".")
		}
		amount, ok := entities[extractor.KeyAmount].(float64)
		if !ok || amount <= 0 {
			return tools.Error("I need an amount. Try \"create invoice for " + customerName + " worth ₹5000\".")
		}

		invoice, err := invoiceService.Create(ctx, userId, &dto.CreateInvoiceRequest{
			CustomerName: customerName,
			Amount:       amount,
		})
		if err != nil {
			return tools.Error("I couldn't create the invoice. Please try again.")
		}

		return tools.Success("Invoice created", map[string]interface{}{
			"invoice_id":     invoice.Id.String(),
			"invoice_number": invoice.InvoiceNumber,
			"customer_name":  invoice.CustomerName,
			"subtotal":       invoice.Subtotal,
			"gst_rate":       invoice.GstRate,
			"gst_amount":     invoice.GstAmount,
			"total_amount":   invoice.TotalAmount,
		})
	}))

	router.Register(intent.InvoiceView, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		req := &dto.ListInvoicesRequest{Limit: 10}
		if strings.Contains(strings.ToLower(query), "pending") || strings.Contains(strings.ToLower(query), "unpaid") {
			req.Status = "sent"
		}
		if _, ok := entities[extractor.KeyMonth]; ok {
			req.Month = resolvePeriod(entities)
		}
		list, err := invoiceService.List(ctx, userId, req)
		if err != nil {
			return tools.Error("I couldn't load your invoices. Please try again.")
		}

		summaries := make([]string, 0, len(list.Invoices))
		for _, inv := range list.Invoices {
			summaries = append(summaries, fmt.Sprintf("%s — %s — ₹%.2f (%s)",
				inv.InvoiceNumber, inv.CustomerName, inv.TotalAmount, inv.Status))
		}
		return tools.Success("Invoices listed", map[string]interface{}{
			"count":       len(list.Invoices),
			"summaries":   summaries,
			"total_value": list.TotalValue,
		})
	}))

	router.Register(intent.InvoiceDelete, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		lower := strings.ToLower(query)
		if strings.Contains(lower, "all my invoices") || strings.Contains(lower, "delete all") {
			count, err := invoiceService.DeleteAll(ctx, userId)
			if err != nil {
				return tools.Error("I couldn't delete your invoices. Please try again.")
			}
			return tools.Success("Invoices deleted", map[string]interface{}{
				"deleted_count": count,
			})
		}

		digits, _ := entities[extractor.KeyInvoiceNumber].(string)
		if digits == "" {
			return tools.Error("Tell me which invoice to delete, e.g. \"delete invoice INV-42\" or \"delete all my invoices\".")
		}
		invoice, err := invoiceService.DeleteByNumberSuffix(ctx, userId, digits)
		if err != nil {
			return tools.Error("I couldn't delete that invoice. Please try again.")
		}
		if invoice == nil {
			return tools.Error("I couldn't find an invoice matching \"" + digits + "\".")
		}
		return tools.Success("Invoice deleted", map[string]interface{}{
			"invoice_number": invoice.InvoiceNumber,
		})
	}))

	router.Register(intent.GstVerify, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		gstin, _ := entities[extractor.KeyGstNumber].(string)
		if gstin == "" {
			return tools.Error("Please share the 15-character GSTIN you want me to check.")
		}

		res, err := gstService.VerifyGstin(ctx, gstin)
		if err != nil {
			return tools.Error("I couldn't verify that GSTIN. Please try again.")
		}
		if !res.Valid {
			return tools.Error("\"" + gstin + "\" doesn't look like a valid GSTIN.")
		}
		if res.Pending {
			return tools.Pending("The GST registry is unreachable right now. "+
				"The format of "+gstin+" is valid; I'll note it and you can retry later.", map[string]interface{}{
				"gstin": gstin,
			})
		}
		return tools.Success("GSTIN verified", map[string]interface{}{
			"gstin":      res.Gstin,
			"legal_name": res.LegalName,
			"trade_name": res.TradeName,
			"state":      res.State,
			"status":     res.Status,
		})
	}))

	router.Register(intent.GstFiling, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		period := resolvePeriod(entities)
		filing, err := gstService.PrepareFiling(ctx, userId, &dto.PrepareFilingRequest{
			FilingType: "GSTR3B",
			Period:     period,
		})
		if err != nil {
			return tools.Error("I couldn't prepare your GST figures. Please try again.")
		}
		return tools.Success("Filing prepared", map[string]interface{}{
			"period":      filing.Period,
			"total_sales": filing.TotalSales,
			"total_tax":   filing.TotalTax,
		})
	}))

	router.Register(intent.BusinessSummary, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		summary, err := dashboardService.SummaryForMonth(ctx, userId, resolvePeriod(entities))
		if err != nil {
			return tools.Error("I couldn't load your business summary. Please try again.")
		}
		return tools.Success("Summary ready", map[string]interface{}{
			"period":         summary.Month,
			"total_revenue":  summary.TotalRevenue,
			"invoice_count":  summary.TotalInvoices,
			"paid_count":     summary.InvoicesByStatus["paid"],
			"customer_count": summary.CustomerCount,
		})
	}))

	router.Register(intent.PreferenceUpdate, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		language, _ := entities[extractor.KeyLanguage].(string)
		if language == "" {
			return tools.Error("Which language should I use? I support Hindi, English and other Indian languages.")
		}
		// The persistence happens in the pipeline's fact-write step.
		return tools.Success("Preference noted", map[string]interface{}{
			"language": language,
		})
	}))

	router.Register(intent.UdyamLookup, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		number, _ := entities[extractor.KeyUdyamNumber].(string)
		if number == "" {
			return tools.Error("Please share the Udyam number, e.g. UDYAM-KA-01-0001234.")
		}
		reg, err := udyamClient.Lookup(ctx, number)
		if err != nil {
			return tools.Pending("The Udyam portal is unreachable right now. Please retry in a while.", map[string]interface{}{
				"udyam_number": number,
			})
		}
		return tools.Success("Registration found", map[string]interface{}{
			"udyam_number":    reg.UdyamNumber,
			"enterprise_name": reg.EnterpriseName,
			"enterprise_type": reg.EnterpriseType,
		})
	}))

	router.Register(intent.DocumentFetch, tools.ToolFunc(func(ctx context.Context, userId uuid.UUID, entities map[string]interface{}, query string) *tools.Result {
		docType, _ := entities[extractor.KeyDocumentType].(string)
		if docType == "" {
			docType = "document"
		}
		doc, err := digilockerClient.FetchDocument(ctx, userId.String(), docType)
		if err != nil {
			return tools.Pending("I can't fetch documents yet. Link your DigiLocker account in settings and ask again.", map[string]interface{}{
				"doc_type": docType,
			})
		}
		return tools.Success("Document fetched", map[string]interface{}{
			"doc_type": doc.DocType,
			"name":     doc.Name,
			"uri":      doc.URI,
		})
	}))

	return router
}

// resolvePeriod turns a spoken month ("March") into a "YYYY-MM" period,
// assuming the current year, and falls back to the current month.
func resolvePeriod(entities map[string]interface{}) string {
	now := time.Now()
	name, _ := entities[extractor.KeyMonth].(string)
	if name == "" {
		return now.Format("2006-01")
	}
	t, err := time.Parse("January", name)
	if err != nil {
		return now.Format("2006-01")
	}
	return time.Date(now.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
