package catalog

import (
	"sync"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// Catalog holds the current product snapshot as published by the realtime
// feed. Every feed message replaces the snapshot wholesale; readers pull the
// attributes current at add-to-cart time.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func New() *Catalog {
	return &Catalog{products: make(map[string]domain.Product)}
}

// Replace swaps in a full new snapshot.
func (c *Catalog) Replace(products []domain.Product) {
	next := make(map[string]domain.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}

	c.mu.Lock()
	c.products = next
	c.mu.Unlock()
}

// Get returns the current view of one product.
func (c *Catalog) Get(productID string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[productID]
	return p, ok
}

// List returns the current product snapshot.
func (c *Catalog) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}
