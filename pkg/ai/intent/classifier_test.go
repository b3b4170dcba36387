package intent

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"greeting", "Hello there", General},
		{"greeting hindi", "Namaste!", General},
		{"create invoice", "Create invoice for Acme Corp worth ₹5000", InvoiceCreate},
		{"create invoice hinglish", "ek invoice banao Sharma ji ke liye", InvoiceCreate},
		{"view invoices", "show my invoices", InvoiceView},
		{"pending invoices", "any pending invoices this month?", InvoiceView},
		{"delete one invoice", "delete invoice INV-2026-0003", InvoiceDelete},
		{"delete all invoices", "delete all my invoices", InvoiceDelete},
		{"gst verify", "check gst 29ABCDE1234F1Z5", GstVerify},
		{"gstin keyword", "is this gstin real 29ABCDE1234F1Z5", GstVerify},
		{"gst filing", "when is my gst return due", GstFiling},
		{"gstr keyword", "prepare gstr3b for august", GstFiling},
		{"udyam", "look up udyam UDYAM-KA-01-1234567", UdyamLookup},
		{"document", "get my pan card from digilocker", DocumentFetch},
		{"business summary", "how is my business doing", BusinessSummary},
		{"revenue keyword", "what's my revenue this month", BusinessSummary},
		{"preference", "switch language to hindi", PreferenceUpdate},
		{"unknown", "what's the weather in Pune", Unknown},
		{"empty", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// The rule ordering is itself the tie-break policy: a query matching two
// categories must resolve to the earlier one.
func TestClassifyOrderIsTieBreak(t *testing.T) {
	c := NewClassifier()

	// "hello" (general) beats "create invoice" (invoice.create).
	if got := c.Classify("hello, create invoice for Ravi"); got != General {
		t.Errorf("greeting should win over invoice.create, got %v", got)
	}

	// "create invoice" beats "show invoice".
	if got := c.Classify("create invoice and then show invoice list"); got != InvoiceCreate {
		t.Errorf("invoice.create should win over invoice.view, got %v", got)
	}

	// "check gst" beats "gst return".
	if got := c.Classify("check gst before the gst return"); got != GstVerify {
		t.Errorf("gst.verify should win over gst.filing, got %v", got)
	}
}

func TestClassifyOrderPinned(t *testing.T) {
	want := []Intent{
		General,
		InvoiceCreate,
		InvoiceView,
		InvoiceDelete,
		GstVerify,
		GstFiling,
		UdyamLookup,
		DocumentFetch,
		BusinessSummary,
		PreferenceUpdate,
	}

	got := NewClassifier().Order()
	if len(got) != len(want) {
		t.Fatalf("Order() has %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
