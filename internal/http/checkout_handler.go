package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tonpor888/planthubb-sub001/internal/checkout"
	"github.com/tonpor888/planthubb-sub001/internal/coupon"
	"github.com/tonpor888/planthubb-sub001/internal/domain"
	"github.com/tonpor888/planthubb-sub001/internal/pricing"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type QuoteRequestDTO struct {
	CouponCode string `json:"coupon_code"`
}

type QuoteResponseDTO struct {
	Pricing  pricing.Quote        `json:"pricing"`
	Discount *domain.DiscountRule `json:"discount,omitempty"`
}

type SubmitRequestDTO struct {
	CouponCode      string                 `json:"coupon_code"`
	PaymentMethod   string                 `json:"payment_method"`
	PaymentProofURL string                 `json:"payment_proof_url"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
}

// Quote prices the current cart with an optional coupon. Coupon rejections
// come back as structured 422s the storefront shows inline next to the input.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.service.Quote(r.Context(), userID, req.CouponCode)
	if err != nil {
		handleCouponError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, QuoteResponseDTO{Pricing: result.Quote, Discount: result.Rule})
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.Submit(r.Context(), checkout.SubmitRequest{
		BuyerID:         userID,
		CouponCode:      req.CouponCode,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		PaymentProofURL: req.PaymentProofURL,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		handleSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func handleSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrInvalidPayment):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "unknown payment method")
	case errors.Is(err, checkout.ErrIncompleteAddress):
		respondError(w, http.StatusBadRequest, "incomplete_address", "shipping address is missing required fields")
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "checkout_in_flight", "a previous submission is still processing")
	case isCouponError(err):
		handleCouponError(w, err)
	default:
		respondError(w, http.StatusBadGateway, "order_failed", "order could not be saved, please try again")
	}
}

func handleCouponError(w http.ResponseWriter, err error) {
	var belowMin *coupon.BelowMinimumError
	switch {
	case errors.Is(err, coupon.ErrEmptyCode):
		respondError(w, http.StatusUnprocessableEntity, "coupon_empty", "coupon code is empty")
	case errors.Is(err, coupon.ErrNotFound):
		respondError(w, http.StatusUnprocessableEntity, "coupon_not_found", "coupon not found or inactive")
	case errors.Is(err, coupon.ErrExpired):
		respondError(w, http.StatusUnprocessableEntity, "coupon_expired", "coupon is expired or not yet valid")
	case errors.Is(err, coupon.ErrUsageExceeded):
		respondError(w, http.StatusUnprocessableEntity, "coupon_usage_exceeded", "coupon usage limit reached")
	case errors.As(err, &belowMin):
		respondError(w, http.StatusUnprocessableEntity, "coupon_below_minimum",
			fmt.Sprintf("cart subtotal is below the coupon minimum of %.2f", belowMin.MinPurchase))
	default:
		respondError(w, http.StatusBadGateway, "coupon_lookup_failed", "coupon could not be checked, please try again")
	}
}

func isCouponError(err error) bool {
	var belowMin *coupon.BelowMinimumError
	return errors.Is(err, coupon.ErrEmptyCode) ||
		errors.Is(err, coupon.ErrNotFound) ||
		errors.Is(err, coupon.ErrExpired) ||
		errors.Is(err, coupon.ErrUsageExceeded) ||
		errors.As(err, &belowMin)
}
