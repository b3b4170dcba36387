package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/pkg/ai/extractor"
	"smartbiz-be/pkg/ai/intent"
	"smartbiz-be/pkg/ai/tools"
	"smartbiz-be/pkg/digilocker"
)

func TestResolvePeriod(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name     string
		entities map[string]interface{}
		want     string
	}{
		{"named month", map[string]interface{}{extractor.KeyMonth: "March"}, time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")},
		{"december", map[string]interface{}{extractor.KeyMonth: "December"}, time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")},
		{"no month falls back to now", map[string]interface{}{}, time.Now().Format("2006-01")},
		{"garbage month falls back to now", map[string]interface{}{extractor.KeyMonth: "Smarch"}, time.Now().Format("2006-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePeriod(tt.entities); got != tt.want {
				t.Errorf("resolvePeriod(%v) = %q, want %q", tt.entities, got, tt.want)
			}
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	msg := renderTemplate("Invoice {invoice_number} for ₹{total_amount} is ready", map[string]interface{}{
		"invoice_number": "INV-2026-0001",
		"total_amount":   5900.0,
		"unused":         "x",
	})

	if msg != "Invoice INV-2026-0001 for ₹5900 is ready" {
		t.Errorf("rendered = %q", msg)
	}

	// Missing keys are left as-is rather than erased.
	msg = renderTemplate("Hello {name}", map[string]interface{}{})
	if msg != "Hello {name}" {
		t.Errorf("rendered = %q", msg)
	}
}

// fakeInvoiceSvc overrides only what the tool bindings reach.
type fakeInvoiceSvc struct {
	IInvoiceService
	created    *dto.CreateInvoiceRequest
	deletedAll bool
	byNumber   *entity.Invoice
}

func (s *fakeInvoiceSvc) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	s.created = req
	return &dto.InvoiceResponse{
		Id:            uuid.New(),
		InvoiceNumber: "INV-2026-0042",
		CustomerName:  req.CustomerName,
		Subtotal:      req.Amount,
		GstRate:       18,
		GstAmount:     req.Amount * 0.18,
		TotalAmount:   req.Amount * 1.18,
	}, nil
}

func (s *fakeInvoiceSvc) DeleteAll(ctx context.Context, userId uuid.UUID) (int64, error) {
	s.deletedAll = true
	return 4, nil
}

func (s *fakeInvoiceSvc) DeleteByNumberSuffix(ctx context.Context, userId uuid.UUID, digits string) (*entity.Invoice, error) {
	return s.byNumber, nil
}

func newTestRouter(invoiceSvc IInvoiceService) *tools.Router {
	return NewToolRouter(invoiceSvc, nil, nil, nil, digilocker.NewClient())
}

func TestInvoiceCreateToolRequiresCustomer(t *testing.T) {
	router := newTestRouter(&fakeInvoiceSvc{})

	res := router.Route(context.Background(), intent.InvoiceCreate, uuid.New(),
		map[string]interface{}{extractor.KeyAmount: 5000.0}, "create invoice worth 5000")

	if res.Status != tools.StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.Contains(res.Message, "customer name") {
		t.Errorf("message = %q, want a customer-name correction", res.Message)
	}
}

func TestInvoiceCreateToolRequiresAmount(t *testing.T) {
	router := newTestRouter(&fakeInvoiceSvc{})

	res := router.Route(context.Background(), intent.InvoiceCreate, uuid.New(),
		map[string]interface{}{extractor.KeyCustomerName: "Acme Corp"}, "create invoice for Acme Corp")

	if res.Status != tools.StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.Contains(res.Message, "amount") {
		t.Errorf("message = %q, want an amount correction", res.Message)
	}
}

func TestInvoiceCreateToolSuccess(t *testing.T) {
	svc := &fakeInvoiceSvc{}
	router := newTestRouter(svc)

	res := router.Route(context.Background(), intent.InvoiceCreate, uuid.New(),
		map[string]interface{}{
			extractor.KeyCustomerName: "Acme Corp",
			extractor.KeyAmount:       5000.0,
		}, "create invoice for Acme Corp worth 5000")

	if res.Status != tools.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status)
	}
	if svc.created == nil || svc.created.CustomerName != "Acme Corp" || svc.created.Amount != 5000.0 {
		t.Errorf("service got %+v, want Acme Corp / 5000", svc.created)
	}
	if res.Data["invoice_number"] != "INV-2026-0042" {
		t.Errorf("invoice_number = %v", res.Data["invoice_number"])
	}
}

func TestInvoiceDeleteToolBulk(t *testing.T) {
	svc := &fakeInvoiceSvc{}
	router := newTestRouter(svc)

	res := router.Route(context.Background(), intent.InvoiceDelete, uuid.New(),
		map[string]interface{}{}, "delete all my invoices")

	if res.Status != tools.StatusSuccess {
		t.Fatalf("status = %q, want success", res.Status)
	}
	if !svc.deletedAll {
		t.Error("bulk path must call DeleteAll")
	}
	if res.Data["deleted_count"] != int64(4) {
		t.Errorf("deleted_count = %v, want 4", res.Data["deleted_count"])
	}
}

func TestInvoiceDeleteToolNotFound(t *testing.T) {
	router := newTestRouter(&fakeInvoiceSvc{byNumber: nil})

	res := router.Route(context.Background(), intent.InvoiceDelete, uuid.New(),
		map[string]interface{}{extractor.KeyInvoiceNumber: "42"}, "delete invoice #42")

	if res.Status != tools.StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.Contains(res.Message, "couldn't find") {
		t.Errorf("message = %q, want a not-found reply", res.Message)
	}
}

func TestInvoiceDeleteToolNeedsTarget(t *testing.T) {
	router := newTestRouter(&fakeInvoiceSvc{})

	res := router.Route(context.Background(), intent.InvoiceDelete, uuid.New(),
		map[string]interface{}{}, "delete invoice")

	if res.Status != tools.StatusError {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if !strings.Contains(res.Message, "which invoice") {
		t.Errorf("message = %q, want a which-invoice prompt", res.Message)
	}
}

func TestDocumentFetchToolPendingUntilLinked(t *testing.T) {
	router := newTestRouter(&fakeInvoiceSvc{})

	res := router.Route(context.Background(), intent.DocumentFetch, uuid.New(),
		map[string]interface{}{extractor.KeyDocumentType: "pan"}, "get my pan card")

	if res.Status != tools.StatusPending {
		t.Fatalf("status = %q, want pending while the account is unlinked", res.Status)
	}
	if res.Data["doc_type"] != "pan" {
		t.Errorf("doc_type = %v, want pan", res.Data["doc_type"])
	}
}
