package cart

import (
	"context"
	"sync"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// MemoryAdapter is an in-process Adapter used in tests and as the fallback
// when no Redis is configured.
type MemoryAdapter struct {
	mu    sync.RWMutex
	carts map[string][]domain.LineItem
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{carts: make(map[string][]domain.LineItem)}
}

func (m *MemoryAdapter) Load(_ context.Context, buyerID string) ([]domain.LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[buyerID]
	if !ok {
		return nil, ErrNotPersisted
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryAdapter) Save(_ context.Context, buyerID string, items []domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]domain.LineItem, len(items))
	copy(stored, items)
	m.carts[buyerID] = stored
	return nil
}

func (m *MemoryAdapter) Delete(_ context.Context, buyerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, buyerID)
	return nil
}
