package seller

import (
	"context"
	"fmt"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
	"github.com/tonpor888/planthubb-sub001/internal/order"
)

// DashboardMetrics aggregates a seller's share of the orders that include at
// least one of their items. Revenue counts only the seller's own lines, not
// the whole order total.
type DashboardMetrics struct {
	SellerID      string  `json:"seller_id"`
	OrderCount    int     `json:"order_count"`
	PendingOrders int     `json:"pending_orders"`
	UnitsSold     int     `json:"units_sold"`
	Revenue       float64 `json:"revenue"`
}

// MetricsService computes dashboard aggregates from persisted orders.
type MetricsService struct {
	orders order.Repository
}

func NewMetricsService(orders order.Repository) *MetricsService {
	return &MetricsService{orders: orders}
}

// Metrics recomputes the seller's aggregates from their current orders.
func (s *MetricsService) Metrics(ctx context.Context, sellerID string) (*DashboardMetrics, error) {
	orders, err := s.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seller orders: %w", err)
	}

	m := &DashboardMetrics{SellerID: sellerID}
	for _, o := range orders {
		m.OrderCount++
		if o.Status == domain.OrderStatusPending {
			m.PendingOrders++
		}
		for _, item := range o.Items {
			if item.SellerID != sellerID {
				continue
			}
			m.UnitsSold += item.Quantity
			m.Revenue += item.UnitPrice * float64(item.Quantity)
		}
	}
	return m, nil
}
