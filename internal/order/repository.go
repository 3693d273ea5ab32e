package order

import (
	"context"
	"errors"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// Repository defines the order persistence operations. Orders are written
// once at checkout and afterwards touched only by appending status
// transitions.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Order, error)
	AppendStatus(ctx context.Context, id string, status domain.OrderStatus, message string) error
}
