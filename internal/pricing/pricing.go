package pricing

import (
	"math"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Config carries the delivery policy. The fee is a single flat amount charged
// whenever the cart is non-empty.
type Config struct {
	DeliveryFee float64
}

// Quote is the derived pricing breakdown for a cart. It is recomputed from
// scratch on every change, never stored.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Compute prices a cart against an optional discount rule. It is a pure
// function: malformed discount input degrades to a zero discount instead of
// erroring, and every step clamps so the result is never negative or NaN.
func Compute(items []domain.LineItem, rule *domain.DiscountRule, cfg Config) Quote {
	var subtotal float64
	for _, item := range items {
		subtotal += sanitize(item.UnitPrice) * float64(max(item.Quantity, 0))
	}
	subtotal = sanitize(subtotal)

	discount := discountAmount(subtotal, rule)

	var fee float64
	if len(items) > 0 {
		fee = sanitize(cfg.DeliveryFee)
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	total += fee

	return Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Total:       sanitize(total),
	}
}

// discountAmount resolves the rule into a concrete amount in [0, subtotal].
func discountAmount(subtotal float64, rule *domain.DiscountRule) float64 {
	if rule == nil {
		return 0
	}

	value := sanitize(rule.Value)

	var amount float64
	switch rule.Type {
	case domain.DiscountPercentage:
		amount = subtotal * (value / 100)
	case domain.DiscountFixed:
		amount = value
	default:
		// Unknown discount type from a malformed record: no effective discount.
		return 0
	}

	amount = sanitize(amount)
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}

// sanitize clamps NaN, infinities and negatives to 0 so bad stored data can
// never break a checkout.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
