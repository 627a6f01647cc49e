package market

import (
	"math"
	"sort"

	"dataweaver-be/internal/entity"
)

// Enrich computes the derived statistics for a table of products and returns
// a new slice; the input is never mutated. An empty table comes back
// unchanged. PriceNormalized uses sample standard deviation; when the
// deviation is zero (or undefined, as for a single row) it substitutes 0
// rather than propagating NaN.
func Enrich(rows []entity.ProductRecord) []entity.ProductRecord {
	if len(rows) == 0 {
		return rows
	}

	mean := 0.0
	for _, r := range rows {
		mean += r.Price
	}
	mean /= float64(len(rows))

	stddev := 0.0
	if len(rows) > 1 {
		sumSq := 0.0
		for _, r := range rows {
			d := r.Price - mean
			sumSq += d * d
		}
		stddev = math.Sqrt(sumSq / float64(len(rows)-1))
	}

	out := make([]entity.ProductRecord, len(rows))
	copy(out, rows)
	for i := range out {
		if stddev > 0 {
			out[i].PriceNormalized = (out[i].Price - mean) / stddev
		} else {
			out[i].PriceNormalized = 0
		}
		// Rows reaching enrichment always have Price > 0 (upstream filter).
		out[i].ValueScore = out[i].Rating * float64(out[i].Reviews) / out[i].Price
		out[i].PopularityScore = out[i].Rating * math.Log1p(float64(out[i].Reviews))
	}
	return out
}

// TrendingScore is the weighted composite used to rank rows. It is only
// meaningful for relative ordering within one enriched table.
func TrendingScore(r entity.ProductRecord) float64 {
	return 0.4*r.ValueScore + 0.4*r.PopularityScore + 0.2*r.PriceNormalized
}

// Trending returns the top n rows of an enriched table by trending score,
// descending. Ties keep the original row order (stable sort) so results are
// deterministic.
func Trending(rows []entity.ProductRecord, n int) []entity.ProductRecord {
	if len(rows) == 0 || n <= 0 {
		return []entity.ProductRecord{}
	}

	out := make([]entity.ProductRecord, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return TrendingScore(out[i]) > TrendingScore(out[j])
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}
