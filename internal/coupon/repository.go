package coupon

import (
	"context"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Repository looks up coupon records by their canonical (uppercased) code.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	// FindActiveByCode returns the active coupon matching the code, or
	// ErrNotFound when no active coupon carries it.
	FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
