package services

import "testing"

func TestValidBarcode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"036000291452", true},     // UPC-A
		{"8901030865278", true},    // EAN-13
		{"12345", false},           // too short
		{"12345678901234", false},  // too long
		{"03600029145X", false},    // non-digit
		{"8901 30865278", false},   // embedded space
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidBarcode(tc.code); got != tc.want {
			t.Fatalf("ValidBarcode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
