package domain

import "time"

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage takes a percentage off the cart subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed takes a fixed amount off, capped at the subtotal.
	DiscountFixed DiscountType = "fixed"
)

// Coupon is a stored promotional code. Read-only from the core's perspective;
// UsedCount is maintained externally and enforced here as a pre-check only.
type Coupon struct {
	ID            string       `bson:"_id,omitempty" json:"id"`
	Code          string       `bson:"code" json:"code"`
	DiscountType  DiscountType `bson:"discount_type" json:"discount_type"`
	DiscountValue float64      `bson:"discount_value" json:"discount_value"`
	MinPurchase   float64      `bson:"min_purchase" json:"min_purchase"`
	MaxUses       int          `bson:"max_uses" json:"max_uses"`
	UsedCount     int          `bson:"used_count" json:"used_count"`
	ValidFrom     time.Time    `bson:"valid_from" json:"valid_from"`
	ValidUntil    time.Time    `bson:"valid_until" json:"valid_until"`
	IsActive      bool         `bson:"is_active" json:"is_active"`
}

// DiscountRule is the validated outcome of a coupon lookup, handed to the
// pricing engine.
type DiscountRule struct {
	Code  string       `json:"code"`
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}
