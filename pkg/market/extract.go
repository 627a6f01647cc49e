package market

import (
	"strconv"
	"strings"
)

const DefaultCurrencySymbol = "₹"

// currencySymbols in detection priority order. When a price string carries
// more than one symbol, the first match in this list wins.
var currencySymbols = []string{"₹", "$", "€", "£"}

// ExtractPrice parses a raw price string (possibly empty, possibly carrying a
// currency symbol and thousands separators) into a numeric value and a
// currency symbol. It never fails: anything unparseable degrades to 0.0 and
// an undetectable symbol degrades to ₹.
func ExtractPrice(raw string) (float64, string) {
	symbol := DefaultCurrencySymbol
	for _, s := range currencySymbols {
		if strings.Contains(raw, s) {
			symbol = s
			break
		}
	}

	if raw == "" {
		return 0.0, symbol
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0.0, symbol
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0, symbol
	}
	return value, symbol
}

// Plausibility gate for extracted prices. Callers treat out-of-range values
// as invalid, not merely unusual.
const (
	MinPlausiblePrice = 10.0
	MaxPlausiblePrice = 1_000_000.0
)

// PlausiblePrice reports whether v falls inside the accepted price band.
func PlausiblePrice(v float64) bool {
	return v >= MinPlausiblePrice && v <= MaxPlausiblePrice
}
