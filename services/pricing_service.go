package services

import "tshirt-store/models"

// Quote is the result of pricing a size-chart selection: how many pieces in
// total, which tier applies, and what they cost.
type Quote struct {
	TotalQuantity int
	IsBulk        bool
	PricePerItem  models.Money
	TotalPrice    models.Money
}

// QuoteSelection prices a quantities map against a pricing rule. Entries
// with zero or negative quantity are treated as absent. An empty selection
// yields the zero Quote with the regular tier.
func QuoteSelection(quantities map[string]int, rule models.PricingRule) Quote {
	total := 0
	for _, q := range quantities {
		if q > 0 {
			total += q
		}
	}
	if total == 0 {
		return Quote{}
	}

	bulk := rule.BulkThreshold > 0 && total >= rule.BulkThreshold
	unit := rule.RegularPrice
	if bulk {
		unit = rule.BulkPrice
	}
	return Quote{
		TotalQuantity: total,
		IsBulk:        bulk,
		PricePerItem:  unit,
		TotalPrice:    unit.Mul(total),
	}
}
