package market

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestFallbackProducts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rows := FallbackProducts("laptop", 20, rng)
	if len(rows) != 10 {
		t.Fatalf("len = %d, want 10 (template count)", len(rows))
	}

	for _, r := range rows {
		if !strings.HasPrefix(r.ProductName, "laptop ") {
			t.Errorf("ProductName %q missing query prefix", r.ProductName)
		}
		if r.Price < 5000 || r.Price > 80000 {
			t.Errorf("Price %v outside fallback band", r.Price)
		}
		if r.Price <= 0 {
			t.Errorf("Price %v must survive the price filter", r.Price)
		}
		if r.Rating < 3.5 || r.Rating > 5.0 {
			t.Errorf("Rating %v outside [3.5, 5.0]", r.Rating)
		}
		if r.Reviews < 50 || r.Reviews > 2000 {
			t.Errorf("Reviews %v outside [50, 2000]", r.Reviews)
		}
		if r.Source == "" {
			t.Error("Source must be set")
		}
	}
}

func TestFallbackProductsBoundedByMax(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rows := FallbackProducts("phone", 3, rng)
	if len(rows) != 3 {
		t.Errorf("len = %d, want 3", len(rows))
	}

	rows = FallbackProducts("phone", 0, rng)
	if len(rows) != 0 {
		t.Errorf("len = %d, want 0", len(rows))
	}
}

func TestFallbackProductsEmptyQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rows := FallbackProducts("", 5, rng)
	if len(rows) != 5 {
		t.Fatalf("len = %d, want 5", len(rows))
	}
	for _, r := range rows {
		if r.ProductName == "" {
			t.Error("ProductName must not be empty for empty query")
		}
		if strings.HasPrefix(r.ProductName, " ") {
			t.Errorf("ProductName %q has stray leading space", r.ProductName)
		}
	}
}

func TestFallbackProductsDeterministicWithSeed(t *testing.T) {
	a := FallbackProducts("laptop", 10, rand.New(rand.NewSource(99)))
	b := FallbackProducts("laptop", 10, rand.New(rand.NewSource(99)))
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed must reproduce identical rows")
	}
}
