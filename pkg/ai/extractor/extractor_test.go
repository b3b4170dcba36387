package extractor

import (
	"testing"
)

func TestExtractInvoiceScenario(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("Create invoice for Acme Corp worth ₹5000", "invoice.create")

	if got := entities[KeyCustomerName]; got != "Acme Corp" {
		t.Errorf("customer_name = %v, want %q", got, "Acme Corp")
	}
	if got := entities[KeyAmount]; got != 5000.0 {
		t.Errorf("amount = %v, want 5000.0", got)
	}
}

func TestExtractAmount(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		query string
		want  float64
		found bool
	}{
		{"rupee symbol", "bill for ₹5000", 5000, true},
		{"rs prefix", "invoice of Rs. 1,250.50", 1250.50, true},
		{"inr prefix", "INR 300 please", 300, true},
		{"rupees suffix", "worth 12000 rupees", 12000, true},
		{"thousands separators", "₹1,00,000 total", 100000, true},
		{"no amount", "show my invoices", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := e.Extract(tt.query, "")
			got, ok := entities[KeyAmount].(float64)
			if ok != tt.found {
				t.Fatalf("amount present = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("amount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractCustomerName(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"stops at worth", "create invoice for Acme Corp worth ₹5000", "Acme Corp", true},
		{"stops at digit", "bill to Sharma Traders 5000", "Sharma Traders", true},
		{"stops at of", "invoice for Gupta Stores of Rs. 300", "Gupta Stores", true},
		{"title cased", "new invoice for acme corp worth ₹100", "Acme Corp", true},
		{"no preposition", "show invoices", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := e.Extract(tt.query, "")
			got, ok := entities[KeyCustomerName].(string)
			if ok != tt.found {
				t.Fatalf("customer_name present = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("customer_name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractIdentifiers(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("check gst 29abcde1234f1z5", "gst.verify")
	if got := entities[KeyGstNumber]; got != "29ABCDE1234F1Z5" {
		t.Errorf("gst_number = %v, want 29ABCDE1234F1Z5", got)
	}

	entities = e.Extract("look up udyam-ka-01-1234567", "udyam.lookup")
	if got := entities[KeyUdyamNumber]; got != "UDYAM-KA-01-1234567" {
		t.Errorf("udyam_number = %v, want UDYAM-KA-01-1234567", got)
	}

	entities = e.Extract("delete invoice INV-2026-0003", "invoice.delete")
	if got := entities[KeyInvoiceNumber]; got != "2026" {
		t.Errorf("invoice_number = %v, want leading digits 2026", got)
	}

	entities = e.Extract("delete invoice #42", "invoice.delete")
	if got := entities[KeyInvoiceNumber]; got != "42" {
		t.Errorf("invoice_number = %v, want 42", got)
	}
}

func TestExtractBusinessName(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		query string
		want  string
	}{
		{"my company name is Sharma Textiles", "Sharma Textiles"},
		{"my firm is Gupta & Sons, since 1998", "Gupta & Sons"},
	}

	for _, tt := range tests {
		entities := e.Extract(tt.query, "")
		if got := entities[KeyBusinessName]; got != tt.want {
			t.Errorf("Extract(%q) business_name = %v, want %q", tt.query, got, tt.want)
		}
	}
}

func TestExtractMonthDateLanguage(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("gst return for august due on 11/09/2026 in hindi please", "")

	if got := entities[KeyMonth]; got != "August" {
		t.Errorf("month = %v, want August", got)
	}
	if got := entities[KeyDate]; got != "11/09/2026" {
		t.Errorf("date = %v, want 11/09/2026", got)
	}
	if got := entities[KeyLanguage]; got != "hindi" {
		t.Errorf("language = %v, want hindi", got)
	}
}

func TestExtractDocumentType(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("fetch my PAN card", "document.fetch")
	if got := entities[KeyDocumentType]; got != "pan" {
		t.Errorf("document_type = %v, want pan", got)
	}
}

func TestExtractIsSparse(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("how is my business doing", "business.summary")
	for _, key := range []string{KeyAmount, KeyGstNumber, KeyCustomerName, KeyMonth, KeyDate} {
		if _, ok := entities[key]; ok {
			t.Errorf("unexpected entity %q = %v", key, entities[key])
		}
	}
}

func TestValidGstin(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"29ABCDE1234F1Z5", true},
		{"29abcde1234f1z5", true},
		{"07AAACI1234A1Z2", true},
		{"29ABCDE1234F1X5", false}, // 14th char must be Z
		{"29ABCDE1234F1Z", false},  // too short
		{"929ABCDE1234F1Z5", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidGstin(tt.value); got != tt.want {
			t.Errorf("ValidGstin(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
