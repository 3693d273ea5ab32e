package cart

import (
	"context"
	"errors"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// ErrNotPersisted is returned by Load when no cart is stored for the key.
var ErrNotPersisted = errors.New("no persisted cart")

// Adapter persists a buyer's cart lines between sessions. Implementations are
// best-effort: the store logs failures and keeps operating in memory.
type Adapter interface {
	Load(ctx context.Context, buyerID string) ([]domain.LineItem, error)
	Save(ctx context.Context, buyerID string, items []domain.LineItem) error
	Delete(ctx context.Context, buyerID string) error
}
