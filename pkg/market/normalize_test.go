package market

import (
	"math/rand"
	"testing"
)

func TestNormalizeItemDefaults(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	record := NormalizeItem(RawItem{}, rng)

	if record.ProductName != "Unknown" {
		t.Errorf("ProductName = %q, want Unknown", record.ProductName)
	}
	if record.Source != "Google Shopping" {
		t.Errorf("Source = %q, want Google Shopping", record.Source)
	}
	if record.Price != 0 {
		t.Errorf("Price = %v, want 0 (exclusion marker)", record.Price)
	}
	if record.CurrencySymbol != "₹" {
		t.Errorf("CurrencySymbol = %q, want ₹", record.CurrencySymbol)
	}
	if record.Rating < 3.5 || record.Rating > 5.0 {
		t.Errorf("Rating = %v, want in [3.5, 5.0]", record.Rating)
	}
	if record.Reviews < 50 || record.Reviews > 1000 {
		t.Errorf("Reviews = %v, want in [50, 1000]", record.Reviews)
	}
}

func TestNormalizeItemRating(t *testing.T) {
	tests := []struct {
		name        string
		rating      any
		wantReplace bool
		wantExact   float64
	}{
		{name: "valid rating kept", rating: 4.2, wantExact: 4.2},
		{name: "zero kept", rating: 0.0, wantExact: 0.0},
		{name: "five kept", rating: 5.0, wantExact: 5.0},
		{name: "above range replaced", rating: 7.0, wantReplace: true},
		{name: "negative replaced", rating: -1.0, wantReplace: true},
		{name: "non numeric replaced", rating: "great", wantReplace: true},
		{name: "missing replaced", rating: nil, wantReplace: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			record := NormalizeItem(RawItem{Rating: tt.rating}, rng)
			if tt.wantReplace {
				if record.Rating < 3.5 || record.Rating > 5.0 {
					t.Errorf("Rating = %v, want in [3.5, 5.0]", record.Rating)
				}
			} else if record.Rating != tt.wantExact {
				t.Errorf("Rating = %v, want %v unchanged", record.Rating, tt.wantExact)
			}
		})
	}
}

func TestNormalizeItemImplausiblePrice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		price string
		want  float64
	}{
		{"₹1,234", 1234},
		{"₹5", 0},          // below the plausibility gate
		{"₹2,000,000", 0},  // above the plausibility gate
		{"free", 0},
	}

	for _, tt := range tests {
		record := NormalizeItem(RawItem{Price: tt.price}, rng)
		if record.Price != tt.want {
			t.Errorf("NormalizeItem price %q = %v, want %v", tt.price, record.Price, tt.want)
		}
	}
}

// Mirrors the raw API shape {title: "Widget X", price: "₹1,234", rating: 7,
// reviews: null}.
func TestNormalizeItemWidgetScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	record := NormalizeItem(RawItem{
		Title:  "Widget X",
		Price:  "₹1,234",
		Rating: 7.0,
	}, rng)

	if record.ProductName != "Widget X" {
		t.Errorf("ProductName = %q", record.ProductName)
	}
	if record.Price != 1234.0 {
		t.Errorf("Price = %v, want 1234", record.Price)
	}
	if record.CurrencySymbol != "₹" {
		t.Errorf("CurrencySymbol = %q, want ₹", record.CurrencySymbol)
	}
	if record.Rating < 3.5 || record.Rating > 5.0 {
		t.Errorf("Rating = %v, want replacement in [3.5, 5.0]", record.Rating)
	}
	if record.Reviews < 50 || record.Reviews > 1000 {
		t.Errorf("Reviews = %v, want replacement in [50, 1000]", record.Reviews)
	}
}

func TestNormalizeItemTrimsTitle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	record := NormalizeItem(RawItem{Title: "  Laptop Pro  "}, rng)
	if record.ProductName != "Laptop Pro" {
		t.Errorf("ProductName = %q, want trimmed", record.ProductName)
	}

	record = NormalizeItem(RawItem{Title: "   "}, rng)
	if record.ProductName != "Unknown" {
		t.Errorf("ProductName = %q, want Unknown for whitespace-only title", record.ProductName)
	}
}

func TestNormalizeItemReviews(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	record := NormalizeItem(RawItem{Reviews: 321.0}, rng)
	if record.Reviews != 321 {
		t.Errorf("Reviews = %v, want 321 unchanged", record.Reviews)
	}

	record = NormalizeItem(RawItem{Reviews: -4.0}, rng)
	if record.Reviews < 50 || record.Reviews > 1000 {
		t.Errorf("Reviews = %v, want replacement in [50, 1000]", record.Reviews)
	}

	record = NormalizeItem(RawItem{Reviews: "many"}, rng)
	if record.Reviews < 50 || record.Reviews > 1000 {
		t.Errorf("Reviews = %v, want replacement in [50, 1000]", record.Reviews)
	}
}
