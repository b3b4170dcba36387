package specification

import "testing"

func TestInvoiceNumberSuffixPattern(t *testing.T) {
	tests := []struct {
		digits string
		want   string
	}{
		{"42", "%-0042"},     // zero-padded so 0142 can't match
		{"0042", "%-0042"},   // already padded
		{"10000", "%-10000"}, // sequences past the pad width keep their width
		{"2026-0003", "%2026-0003"},
		{"INV-42", "%INV-42"}, // non-numeric falls back to a raw suffix
	}

	for _, tt := range tests {
		spec := ByInvoiceNumberSuffix{Digits: tt.digits}
		if got := spec.pattern(); got != tt.want {
			t.Errorf("pattern(%q) = %q, want %q", tt.digits, got, tt.want)
		}
	}
}
