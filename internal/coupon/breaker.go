package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// BreakerRepository wraps a Repository with a circuit breaker so a struggling
// document store fails checkout coupon lookups fast instead of piling up
// slow calls. Domain misses (ErrNotFound) do not count as failures.
type BreakerRepository struct {
	inner Repository
	cb    *gobreaker.CircuitBreaker[*domain.Coupon]
}

func NewBreakerRepository(inner Repository) *BreakerRepository {
	settings := gobreaker.Settings{
		Name:        "coupon-lookup",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}

	return &BreakerRepository{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[*domain.Coupon](settings),
	}
}

func (b *BreakerRepository) FindActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return b.cb.Execute(func() (*domain.Coupon, error) {
		return b.inner.FindActiveByCode(ctx, code)
	})
}
