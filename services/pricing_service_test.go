package services

import (
	"testing"

	"tshirt-store/models"
)

var testRule = models.PricingRule{
	BulkThreshold: 15,
	BulkPrice:     27900,
	RegularPrice:  31900,
}

func TestQuoteSelectionEmpty(t *testing.T) {
	q := QuoteSelection(map[string]int{}, testRule)
	if q.TotalQuantity != 0 || q.TotalPrice != 0 || q.IsBulk {
		t.Fatalf("empty selection: got %+v, want zero quote", q)
	}
}

func TestQuoteSelectionRegularTier(t *testing.T) {
	q := QuoteSelection(map[string]int{"Black-M": 5, "White-L": 9}, testRule)
	if q.TotalQuantity != 14 {
		t.Fatalf("TotalQuantity = %d, want 14", q.TotalQuantity)
	}
	if q.IsBulk {
		t.Fatal("14 pieces must not reach the bulk tier")
	}
	if q.PricePerItem != 31900 || q.TotalPrice != 14*31900 {
		t.Fatalf("got %d @ %d, want total %d", q.PricePerItem, q.TotalPrice, 14*31900)
	}
}

func TestQuoteSelectionBulkAtThreshold(t *testing.T) {
	q := QuoteSelection(map[string]int{"Black-M": 15}, testRule)
	if !q.IsBulk {
		t.Fatal("15 pieces must hit the bulk tier")
	}
	if q.PricePerItem != 27900 || q.TotalPrice != 15*27900 {
		t.Fatalf("got %d @ %d, want bulk pricing", q.PricePerItem, q.TotalPrice)
	}
}

func TestQuoteSelectionIgnoresNonPositive(t *testing.T) {
	q := QuoteSelection(map[string]int{"Black-M": -3, "White-L": 0, "Navy-S": 2}, testRule)
	if q.TotalQuantity != 2 {
		t.Fatalf("TotalQuantity = %d, want 2", q.TotalQuantity)
	}
}

func TestQuoteSelectionZeroThresholdNeverBulk(t *testing.T) {
	rule := models.PricingRule{BulkPrice: 27900, RegularPrice: 31900}
	q := QuoteSelection(map[string]int{"Black-M": 100}, rule)
	if q.IsBulk {
		t.Fatal("rule without a threshold must stay on the regular tier")
	}
}
