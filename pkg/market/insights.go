package market

import (
	"sort"

	"dataweaver-be/internal/entity"
)

// Summarize reduces an enriched table to its scalar insights. An empty table
// yields nil — "no data" is distinct from a summary of zero values.
func Summarize(rows []entity.ProductRecord) *entity.Insights {
	if len(rows) == 0 {
		return nil
	}

	prices := make([]float64, len(rows))
	sum := 0.0
	for i, r := range rows {
		prices[i] = r.Price
		sum += r.Price
	}
	sort.Float64s(prices)

	median := prices[len(prices)/2]
	if len(prices)%2 == 0 {
		median = (prices[len(prices)/2-1] + prices[len(prices)/2]) / 2
	}

	best := rows[0]
	for _, r := range rows[1:] {
		if r.ValueScore > best.ValueScore {
			best = r
		}
	}

	return &entity.Insights{
		AvgPrice:      sum / float64(len(rows)),
		MedianPrice:   median,
		MinPrice:      prices[0],
		MaxPrice:      prices[len(prices)-1],
		BestValue:     best.ProductName,
		TotalProducts: len(rows),
	}
}
