package market

import (
	"math/rand"
	"strings"

	"dataweaver-be/internal/entity"
)

// Name-suffix templates for synthesized rows. The query is prefixed to each;
// an empty query still yields usable rows.
var fallbackTemplates = []string{
	"Pro Model",
	"Standard Edition",
	"Lite",
	"Plus",
	"Premium",
	"Basic",
	"Advanced",
	"Global Edition",
	"Compact",
	"Max",
}

var fallbackSources = []string{
	"Direct Store",
	"Price Compare",
	"Social Shop",
	"Sample Store",
}

const (
	fallbackMinPrice = 5_000
	fallbackMaxPrice = 80_000
)

// FallbackProducts synthesizes up to max sample rows for query. It is used
// whenever the live shopping API cannot be: no credential, transport error,
// or an empty result set. It never fails and always produces rows with a
// plausible price, so every synthesized row survives the price filter.
func FallbackProducts(query string, max int, rng *rand.Rand) []entity.ProductRecord {
	n := len(fallbackTemplates)
	if max < n {
		n = max
	}
	if n <= 0 {
		return []entity.ProductRecord{}
	}

	query = strings.TrimSpace(query)
	rows := make([]entity.ProductRecord, 0, n)
	for i := 0; i < n; i++ {
		name := fallbackTemplates[i]
		if query != "" {
			name = query + " " + name
		}
		rows = append(rows, entity.ProductRecord{
			ProductName:    name,
			Price:          float64(fallbackMinPrice + rng.Intn(fallbackMaxPrice-fallbackMinPrice+1)),
			CurrencySymbol: DefaultCurrencySymbol,
			Source:         fallbackSources[rng.Intn(len(fallbackSources))],
			Rating:         3.5 + rng.Float64()*1.5,
			Reviews:        50 + rng.Intn(1951),
		})
	}
	return rows
}
