package market

import (
	"testing"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantValue  float64
		wantSymbol string
	}{
		{
			name:       "empty string",
			raw:        "",
			wantValue:  0.0,
			wantSymbol: "₹",
		},
		{
			name:       "plain number",
			raw:        "1234",
			wantValue:  1234,
			wantSymbol: "₹",
		},
		{
			name:       "rupee with thousands separator",
			raw:        "₹1,234",
			wantValue:  1234,
			wantSymbol: "₹",
		},
		{
			name:       "dollar with decimals",
			raw:        "$499.99",
			wantValue:  499.99,
			wantSymbol: "$",
		},
		{
			name:       "euro",
			raw:        "€75",
			wantValue:  75,
			wantSymbol: "€",
		},
		{
			name:       "pound",
			raw:        "£12.50",
			wantValue:  12.5,
			wantSymbol: "£",
		},
		{
			name:       "symbol only",
			raw:        "$",
			wantValue:  0.0,
			wantSymbol: "$",
		},
		{
			name:       "non numeric text",
			raw:        "call for price",
			wantValue:  0.0,
			wantSymbol: "₹",
		},
		{
			name:       "multiple decimal points degrade to zero",
			raw:        "1.2.3",
			wantValue:  0.0,
			wantSymbol: "₹",
		},
		{
			name:       "trailing text stripped",
			raw:        "1,999 onwards",
			wantValue:  1999,
			wantSymbol: "₹",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, symbol := ExtractPrice(tt.raw)
			if value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
			if symbol != tt.wantSymbol {
				t.Errorf("symbol = %q, want %q", symbol, tt.wantSymbol)
			}
		})
	}
}

func TestExtractPriceSymbolPriority(t *testing.T) {
	// When several symbols appear, the fixed priority ₹ > $ > € > £ wins
	// regardless of position in the string.
	tests := []struct {
		raw        string
		wantSymbol string
	}{
		{"$100 (₹8,300)", "₹"},
		{"€90 or $100", "$"},
		{"£80 / €90", "€"},
		{"£80", "£"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, symbol := ExtractPrice(tt.raw)
			if symbol != tt.wantSymbol {
				t.Errorf("symbol = %q, want %q", symbol, tt.wantSymbol)
			}
		})
	}
}

func TestPlausiblePrice(t *testing.T) {
	tests := []struct {
		value float64
		want  bool
	}{
		{9.99, false},
		{10, true},
		{500_000, true},
		{1_000_000, true},
		{1_000_001, false},
		{0, false},
		{-5, false},
	}

	for _, tt := range tests {
		if got := PlausiblePrice(tt.value); got != tt.want {
			t.Errorf("PlausiblePrice(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
