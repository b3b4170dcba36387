package gstn

import "testing"

func TestValidGstinFormat(t *testing.T) {
	tests := []struct {
		gstin string
		want  bool
	}{
		{"29ABCDE1234F1Z5", true},
		{"07AAACI1234A1ZX", true},
		{"29abcde1234f1z5", true},  // case-insensitive
		{"29ABCDE1234F1A5", false}, // 14th char must be Z
		{"2ABCDE1234F1Z5", false},  // missing state digit
		{"29ABCDE1234F1Z55", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidGstinFormat(tt.gstin); got != tt.want {
			t.Errorf("ValidGstinFormat(%q) = %v, want %v", tt.gstin, got, tt.want)
		}
	}
}
