package seller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

type mockOrderRepository struct {
	orders []*domain.Order
	err    error
}

func (m *mockOrderRepository) Create(context.Context, *domain.Order) error { return nil }

func (m *mockOrderRepository) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) ListByBuyer(context.Context, string) ([]*domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) ListBySeller(_ context.Context, sellerID string) ([]*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Order
	for _, o := range m.orders {
		for _, s := range o.SellerIDs {
			if s == sellerID {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (m *mockOrderRepository) AppendStatus(context.Context, string, domain.OrderStatus, string) error {
	return nil
}

func TestMetrics_AggregatesOnlySellerItems(t *testing.T) {
	repo := &mockOrderRepository{orders: []*domain.Order{
		{
			ID:        "o1",
			Status:    domain.OrderStatusPending,
			SellerIDs: []string{"seller-1", "seller-2"},
			Items: []domain.OrderItemSnapshot{
				{ProductID: "p1", UnitPrice: 100, Quantity: 2, SellerID: "seller-1"},
				{ProductID: "p2", UnitPrice: 60, Quantity: 1, SellerID: "seller-2"},
			},
		},
		{
			ID:        "o2",
			Status:    domain.OrderStatusShipped,
			SellerIDs: []string{"seller-1"},
			Items: []domain.OrderItemSnapshot{
				{ProductID: "p3", UnitPrice: 25, Quantity: 4, SellerID: "seller-1"},
			},
		},
	}}

	svc := NewMetricsService(repo)
	m, err := svc.Metrics(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, 2, m.OrderCount)
	assert.Equal(t, 1, m.PendingOrders)
	assert.Equal(t, 6, m.UnitsSold)
	assert.Equal(t, 300.0, m.Revenue, "seller-2's line is excluded from revenue")
}

func TestMetrics_NoOrders(t *testing.T) {
	svc := NewMetricsService(&mockOrderRepository{})

	m, err := svc.Metrics(context.Background(), "seller-1")
	require.NoError(t, err)

	assert.Equal(t, 0, m.OrderCount)
	assert.Equal(t, 0.0, m.Revenue)
}

func TestMetrics_RepositoryFailure(t *testing.T) {
	svc := NewMetricsService(&mockOrderRepository{err: errors.New("store down")})

	_, err := svc.Metrics(context.Background(), "seller-1")
	assert.Error(t, err)
}
