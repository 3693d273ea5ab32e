package coupon

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCode     = errors.New("coupon code is empty")
	ErrNotFound      = errors.New("coupon not found or inactive")
	ErrExpired       = errors.New("coupon is outside its validity window")
	ErrUsageExceeded = errors.New("coupon usage limit reached")
)

// BelowMinimumError is returned when the cart subtotal does not meet the
// coupon's minimum purchase. It carries the threshold so the caller can show
// it to the buyer.
type BelowMinimumError struct {
	MinPurchase float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("cart subtotal below coupon minimum purchase of %.2f", e.MinPurchase)
}
