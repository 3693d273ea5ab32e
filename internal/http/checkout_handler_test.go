package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tonpor888/planthubb-sub001/internal/cart"
	"github.com/tonpor888/planthubb-sub001/internal/checkout"
	"github.com/tonpor888/planthubb-sub001/internal/coupon"
	"github.com/tonpor888/planthubb-sub001/internal/domain"
	"github.com/tonpor888/planthubb-sub001/internal/order"
	"github.com/tonpor888/planthubb-sub001/internal/pricing"
)

// --- Mocks ---

type couponRepoMock struct {
	coupons map[string]*domain.Coupon
}

func (m couponRepoMock) FindActiveByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, coupon.ErrNotFound
	}
	return c, nil
}

type orderRepoMock struct {
	orders []*domain.Order
}

func (m *orderRepoMock) Create(_ context.Context, o *domain.Order) error {
	m.orders = append(m.orders, o)
	return nil
}

func (m *orderRepoMock) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (m *orderRepoMock) ListByBuyer(_ context.Context, buyerID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *orderRepoMock) ListBySeller(context.Context, string) ([]*domain.Order, error) {
	return nil, nil
}

func (m *orderRepoMock) AppendStatus(context.Context, string, domain.OrderStatus, string) error {
	return nil
}

func newCheckoutHandler(t *testing.T) (*CheckoutHandler, *cart.Store, *orderRepoMock) {
	t.Helper()

	coupons := map[string]*domain.Coupon{
		"GREEN50": {
			Code:          "GREEN50",
			DiscountType:  domain.DiscountFixed,
			DiscountValue: 50,
			MinPurchase:   100,
			MaxUses:       10,
			ValidFrom:     time.Now().Add(-time.Hour),
			ValidUntil:    time.Now().Add(time.Hour),
			IsActive:      true,
		},
	}

	carts := cart.NewStore(cart.NewMemoryAdapter())
	repo := &orderRepoMock{}
	svc := checkout.NewService(carts, coupon.NewResolver(couponRepoMock{coupons}), repo, nil, pricing.Config{DeliveryFee: 40})
	return NewCheckoutHandler(svc), carts, repo
}

// --- Quote tests ---

func TestQuote_WithCoupon(t *testing.T) {
	handler, carts, _ := newCheckoutHandler(t)
	carts.AddItem(context.Background(), "buyer-1", domain.LineItem{ProductID: "monstera", UnitPrice: 100, Stock: 10}, 2)

	body := strings.NewReader(`{"coupon_code":"green50"}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout/quote", body))

	handler.Quote(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var response QuoteResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Pricing.Discount != 50 {
		t.Errorf("expected discount 50, got %f", response.Pricing.Discount)
	}
	if response.Pricing.Total != 190 {
		t.Errorf("expected total 190, got %f", response.Pricing.Total)
	}
	if response.Discount == nil || response.Discount.Code != "GREEN50" {
		t.Errorf("expected applied rule GREEN50, got %+v", response.Discount)
	}
}

func TestQuote_UnknownCoupon(t *testing.T) {
	handler, carts, _ := newCheckoutHandler(t)
	carts.AddItem(context.Background(), "buyer-1", domain.LineItem{ProductID: "monstera", UnitPrice: 100, Stock: 10}, 2)

	body := strings.NewReader(`{"coupon_code":"NOPE"}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout/quote", body))

	handler.Quote(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "coupon_not_found" {
		t.Errorf("expected code coupon_not_found, got %s", response.Code)
	}
}

func TestQuote_BelowMinimum(t *testing.T) {
	handler, carts, _ := newCheckoutHandler(t)
	carts.AddItem(context.Background(), "buyer-1", domain.LineItem{ProductID: "fern", UnitPrice: 25, Stock: 10}, 1)

	body := strings.NewReader(`{"coupon_code":"GREEN50"}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout/quote", body))

	handler.Quote(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "coupon_below_minimum" {
		t.Errorf("expected code coupon_below_minimum, got %s", response.Code)
	}
	if !strings.Contains(response.Details, "100.00") {
		t.Errorf("expected threshold in details, got %s", response.Details)
	}
}

// --- Submit tests ---

func TestSubmit_Success(t *testing.T) {
	handler, carts, repo := newCheckoutHandler(t)
	carts.AddItem(context.Background(), "buyer-1", domain.LineItem{ProductID: "monstera", UnitPrice: 100, Stock: 10, SellerID: "seller-1"}, 2)

	body := strings.NewReader(`{
		"coupon_code": "GREEN50",
		"payment_method": "cod",
		"shipping_address": {
			"full_name": "Somchai P.",
			"phone": "0812345678",
			"address_line": "99 Sukhumvit Rd",
			"city": "Bangkok",
			"postal_code": "10110"
		}
	}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", body))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var response domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Total != 190 {
		t.Errorf("expected total 190, got %f", response.Total)
	}
	if response.Status != domain.OrderStatusPending {
		t.Errorf("expected status pending, got %s", response.Status)
	}
	if response.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("expected payment status pending for cod, got %s", response.PaymentStatus)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(repo.orders))
	}
	if len(carts.Items(context.Background(), "buyer-1")) != 0 {
		t.Errorf("expected cart cleared after checkout")
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	handler, _, _ := newCheckoutHandler(t)

	body := strings.NewReader(`{
		"payment_method": "card",
		"shipping_address": {
			"full_name": "Somchai P.",
			"phone": "0812345678",
			"address_line": "99 Sukhumvit Rd",
			"city": "Bangkok"
		}
	}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", body))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected %d, got %d", http.StatusUnprocessableEntity, recorder.Code)
	}
}

func TestSubmit_MissingAddress(t *testing.T) {
	handler, carts, _ := newCheckoutHandler(t)
	carts.AddItem(context.Background(), "buyer-1", domain.LineItem{ProductID: "monstera", UnitPrice: 100, Stock: 10}, 1)

	body := strings.NewReader(`{"payment_method":"card","shipping_address":{"full_name":"Somchai P."}}`)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", body))

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
