package checkout

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tonpor888/planthubb-sub001/internal/cart"
	"github.com/tonpor888/planthubb-sub001/internal/coupon"
	"github.com/tonpor888/planthubb-sub001/internal/domain"
	"github.com/tonpor888/planthubb-sub001/internal/order"
	"github.com/tonpor888/planthubb-sub001/internal/pricing"
)

// EventPublisher announces created orders to downstream consumers. Publication
// is best-effort: a publish failure never fails the checkout.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}

// SubmitRequest bundles everything the buyer confirmed on the checkout page.
type SubmitRequest struct {
	BuyerID         string
	CouponCode      string
	PaymentMethod   domain.PaymentMethod
	PaymentProofURL string
	ShippingAddress domain.ShippingAddress
}

// QuoteResult pairs the computed pricing with the rule that produced the
// discount, if any.
type QuoteResult struct {
	Quote pricing.Quote
	Rule  *domain.DiscountRule
}

// Service runs the checkout workflow: quote the cart, validate the
// submission, snapshot it into an immutable order, persist it and clear the
// cart. One submission per buyer may be in flight at a time.
type Service struct {
	carts    *cart.Store
	coupons  *coupon.Resolver
	orders   order.Repository
	events   EventPublisher
	pricing  pricing.Config
	now      func() time.Time
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewService(carts *cart.Store, coupons *coupon.Resolver, orders order.Repository, events EventPublisher, cfg pricing.Config) *Service {
	return &Service{
		carts:    carts,
		coupons:  coupons,
		orders:   orders,
		events:   events,
		pricing:  cfg,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

// Quote prices the buyer's current cart, applying the coupon code when one is
// given. Coupon errors come back as-is so the caller can show them inline;
// the cart itself is untouched.
func (s *Service) Quote(ctx context.Context, buyerID, couponCode string) (*QuoteResult, error) {
	items := s.carts.Items(ctx, buyerID)

	var rule *domain.DiscountRule
	if strings.TrimSpace(couponCode) != "" {
		subtotal := pricing.Compute(items, nil, s.pricing).Subtotal
		var err error
		rule, err = s.coupons.Apply(ctx, couponCode, subtotal)
		if err != nil {
			return nil, err
		}
	}

	return &QuoteResult{
		Quote: pricing.Compute(items, rule, s.pricing),
		Rule:  rule,
	}, nil
}

// Submit validates the request, assembles the order and persists it with a
// single document write. On success the cart is cleared and an order-created
// event is published best-effort. On failure the in-flight guard is released
// so the buyer may resubmit.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if !s.acquire(req.BuyerID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(req.BuyerID)

	items := s.carts.Items(ctx, req.BuyerID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	quoted, err := s.Quote(ctx, req.BuyerID, req.CouponCode)
	if err != nil {
		return nil, err
	}

	o := s.assemble(req, items, quoted)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.carts.Clear(ctx, req.BuyerID)

	if s.events != nil {
		if err := s.events.OrderCreated(ctx, o); err != nil {
			log.Printf("checkout: publish order created event for %s: %v", o.ID, err)
		}
	}

	return o, nil
}

// assemble snapshots the cart and pricing into an immutable order record.
func (s *Service) assemble(req SubmitRequest, items []domain.LineItem, quoted *QuoteResult) *domain.Order {
	now := s.now()

	snapshots := make([]domain.OrderItemSnapshot, 0, len(items))
	for _, line := range items {
		snapshots = append(snapshots, domain.OrderItemSnapshot{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
			SellerID:  line.SellerID,
		})
	}

	discountCode := ""
	if quoted.Rule != nil {
		discountCode = quoted.Rule.Code
	}

	return &domain.Order{
		ID:              uuid.New().String(),
		BuyerID:         req.BuyerID,
		Items:           snapshots,
		Subtotal:        quoted.Quote.Subtotal,
		DiscountAmount:  quoted.Quote.Discount,
		DiscountCode:    discountCode,
		DeliveryFee:     quoted.Quote.DeliveryFee,
		Total:           quoted.Quote.Total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   req.PaymentMethod.InitialPaymentStatus(),
		PaymentProofURL: req.PaymentProofURL,
		ShippingAddress: req.ShippingAddress,
		Status:          domain.OrderStatusPending,
		StatusLog: []domain.StatusEntry{
			{
				Status:    domain.OrderStatusPending,
				Message:   "Order placed, awaiting confirmation",
				Timestamp: now,
			},
		},
		SellerIDs: sellerPartition(snapshots),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// sellerPartition derives the deduplicated, order-independent set of seller
// ids present in the snapshots. Sorted so the stored form is deterministic.
func sellerPartition(items []domain.OrderItemSnapshot) []string {
	seen := make(map[string]bool, len(items))
	sellers := make([]string, 0, len(items))
	for _, item := range items {
		if item.SellerID == "" || seen[item.SellerID] {
			continue
		}
		seen[item.SellerID] = true
		sellers = append(sellers, item.SellerID)
	}
	sort.Strings(sellers)
	return sellers
}

func validate(req SubmitRequest) error {
	if !req.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}

	addr := req.ShippingAddress
	if strings.TrimSpace(addr.FullName) == "" ||
		strings.TrimSpace(addr.Phone) == "" ||
		strings.TrimSpace(addr.AddressLine) == "" ||
		strings.TrimSpace(addr.City) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

func (s *Service) acquire(buyerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[buyerID] {
		return false
	}
	s.inFlight[buyerID] = true
	return true
}

func (s *Service) release(buyerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, buyerID)
}
