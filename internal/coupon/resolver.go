package coupon

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Resolver validates a buyer-supplied code against the stored coupon record
// and yields the discount rule for the pricing engine. It never mutates the
// coupon: the usage-count increment belongs to the backend, so the max-uses
// check is a pre-check only, not a concurrency guarantee.
type Resolver struct {
	repo Repository
	sfg  singleflight.Group // collapses concurrent lookups of the same code
	now  func() time.Time
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{
		repo: repo,
		now:  time.Now,
	}
}

// Apply normalizes the code, fetches the coupon and walks the eligibility
// checks in order: existence, validity window, usage cap, minimum purchase.
func (r *Resolver) Apply(ctx context.Context, code string, cartSubtotal float64) (*domain.DiscountRule, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	v, err, _ := r.sfg.Do(code, func() (interface{}, error) {
		return r.repo.FindActiveByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	coupon := v.(*domain.Coupon)

	now := r.now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return nil, ErrExpired
	}

	if coupon.UsedCount >= coupon.MaxUses {
		return nil, ErrUsageExceeded
	}

	if cartSubtotal < coupon.MinPurchase {
		return nil, &BelowMinimumError{MinPurchase: coupon.MinPurchase}
	}

	return &domain.DiscountRule{
		Code:  coupon.Code,
		Type:  coupon.DiscountType,
		Value: coupon.DiscountValue,
	}, nil
}
