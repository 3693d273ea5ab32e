package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Store owns the cart lines for every buyer in the process. Each buyer's cart
// is a snapshot slice replaced wholesale on mutation, so readers never observe
// a half-applied update. Every mutation is persisted through the adapter on a
// best-effort basis; persistence failure keeps the in-memory cart working.
type Store struct {
	mu       sync.Mutex
	carts    map[string][]domain.LineItem
	hydrated map[string]bool
	adapter  Adapter
}

func NewStore(adapter Adapter) *Store {
	return &Store{
		carts:    make(map[string][]domain.LineItem),
		hydrated: make(map[string]bool),
		adapter:  adapter,
	}
}

// AddItem inserts the line or, if the product is already present, bumps its
// quantity clamped to the stock recorded on the existing line. Overflow is
// clamped silently, never an error. A non-positive qty counts as 1.
func (s *Store) AddItem(ctx context.Context, buyerID string, item domain.LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.hydrate(ctx, buyerID)

	next := make([]domain.LineItem, 0, len(items)+1)
	found := false
	for _, line := range items {
		if line.ProductID == item.ProductID {
			// The stock ceiling recorded at insert time stays in force.
			line.Quantity = clamp(line.Quantity+qty, 0, line.Stock)
			found = true
		}
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}
	if !found {
		item.Quantity = clamp(qty, 0, item.Stock)
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}

	s.commit(ctx, buyerID, next)
}

// UpdateQuantity sets the line's quantity clamped to [0, stock]; a clamped
// value of 0 removes the line. Unknown product ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, buyerID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.hydrate(ctx, buyerID)

	next := make([]domain.LineItem, 0, len(items))
	for _, line := range items {
		if line.ProductID == productID {
			line.Quantity = clamp(quantity, 0, line.Stock)
		}
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}

	s.commit(ctx, buyerID, next)
}

// RemoveItem drops the line unconditionally; no-op if absent.
func (s *Store) RemoveItem(ctx context.Context, buyerID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.hydrate(ctx, buyerID)

	next := make([]domain.LineItem, 0, len(items))
	for _, line := range items {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}

	s.commit(ctx, buyerID, next)
}

// Clear empties the buyer's cart and drops the persisted copy. Called after a
// successful order submission.
func (s *Store) Clear(ctx context.Context, buyerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[buyerID] = nil
	s.hydrated[buyerID] = true
	if err := s.adapter.Delete(ctx, buyerID); err != nil {
		log.Printf("cart: delete persisted cart for %s: %v", buyerID, err)
	}
}

// Items returns a copy of the buyer's current lines.
func (s *Store) Items(ctx context.Context, buyerID string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.hydrate(ctx, buyerID)

	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}

// ItemCount is the live sum of quantities across all lines.
func (s *Store) ItemCount(ctx context.Context, buyerID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.hydrate(ctx, buyerID) {
		count += line.Quantity
	}
	return count
}

// Subtotal is the live sum of price x quantity across all lines.
func (s *Store) Subtotal(ctx context.Context, buyerID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	for _, line := range s.hydrate(ctx, buyerID) {
		subtotal += line.Subtotal()
	}
	return subtotal
}

// hydrate loads the persisted cart on first access. Load failure degrades to
// an empty cart; the error is logged, never surfaced. Caller holds s.mu.
func (s *Store) hydrate(ctx context.Context, buyerID string) []domain.LineItem {
	if s.hydrated[buyerID] {
		return s.carts[buyerID]
	}
	s.hydrated[buyerID] = true

	items, err := s.adapter.Load(ctx, buyerID)
	if err != nil {
		if !errors.Is(err, ErrNotPersisted) {
			log.Printf("cart: load persisted cart for %s: %v", buyerID, err)
		}
		return nil
	}
	s.carts[buyerID] = items
	return items
}

// commit replaces the buyer's snapshot and persists it. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, buyerID string, items []domain.LineItem) {
	s.carts[buyerID] = items
	if err := s.adapter.Save(ctx, buyerID, items); err != nil {
		log.Printf("cart: persist cart for %s: %v", buyerID, err)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
