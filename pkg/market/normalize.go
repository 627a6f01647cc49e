package market

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"

	"dataweaver-be/internal/entity"
)

const (
	UnknownProductName = "Unknown"
	DefaultSourceLabel = "Google Shopping"
)

// RawItem is one shopping result as it arrives from the external API. Every
// field is optional and may carry the wrong type; the normalizer absorbs all
// of that.
type RawItem struct {
	Title   any
	Price   any
	Rating  any
	Reviews any
	Source  any
}

// NormalizeItem turns one raw result into a ProductRecord. It has no failure
// mode: malformed fields degrade to defaults or randomized plausible values
// drawn from rng. A record whose price fails the plausibility gate comes back
// with Price = 0; filtering those out is the caller's job, applied uniformly
// after all rows are built.
func NormalizeItem(item RawItem, rng *rand.Rand) entity.ProductRecord {
	title := strings.TrimSpace(asString(item.Title))
	if title == "" {
		title = UnknownProductName
	}

	price, symbol := ExtractPrice(asString(item.Price))
	if !PlausiblePrice(price) {
		price = 0.0
	}

	rating, ok := asFloat(item.Rating)
	if !ok || rating < 0 || rating > 5 {
		// Out-of-range ratings are replaced wholesale, never clamped.
		rating = 3.5 + rng.Float64()*1.5
	}

	reviews, ok := asInt(item.Reviews)
	if !ok || reviews < 0 {
		reviews = 50 + rng.Intn(951)
	}

	source := asString(item.Source)
	if source == "" {
		source = DefaultSourceLabel
	}

	return entity.ProductRecord{
		ProductName:    title,
		Price:          price,
		CurrencySymbol: symbol,
		Source:         source,
		Rating:         rating,
		Reviews:        reviews,
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	default:
		return 0, false
	}
}
