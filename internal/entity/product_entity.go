package entity

// ProductRecord is one row of the working table produced by a search.
// Derived fields (PriceNormalized, ValueScore, PopularityScore) are only
// populated after enrichment and are recomputed whenever the table changes.
type ProductRecord struct {
	ProductName    string  `json:"product_name"`
	Price          float64 `json:"price"`
	CurrencySymbol string  `json:"currency_symbol"`
	Source         string  `json:"source"`
	Rating         float64 `json:"rating"`
	Reviews        int     `json:"reviews"`

	PriceNormalized float64 `json:"price_normalized"`
	ValueScore      float64 `json:"value_score"`
	PopularityScore float64 `json:"popularity_score"`
}

// Insights are the scalar statistics reduced from an enriched table.
// A nil *Insights means "no data"; it is never a zero-valued struct.
type Insights struct {
	AvgPrice      float64 `json:"avg_price"`
	MedianPrice   float64 `json:"median_price"`
	MinPrice      float64 `json:"min_price"`
	MaxPrice      float64 `json:"max_price"`
	BestValue     string  `json:"best_value"`
	TotalProducts int     `json:"total_products"`
}

// Provenance tells the caller where a search table came from.
type Provenance string

const (
	ProvenanceLive   Provenance = "live"    // external API results
	ProvenanceSample Provenance = "sample"  // fallback generator
	ProvenanceNoData Provenance = "no_data" // API succeeded but nothing survived filtering
)
