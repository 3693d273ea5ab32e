package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
	"github.com/tonpor888/planthubb-sub001/internal/invoice"
	"github.com/tonpor888/planthubb-sub001/internal/order"
)

type OrdersHandler struct {
	orders   order.Repository
	renderer invoice.Renderer
}

func NewOrdersHandler(orders order.Repository, renderer invoice.Renderer) *OrdersHandler {
	return &OrdersHandler{orders: orders, renderer: renderer}
}

type UpdateStatusRequestDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListByBuyer(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "orders_unavailable", "orders could not be loaded")
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// GetInvoice renders the order's invoice from its immutable item snapshots.
func (h *OrdersHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.renderer.Render(invoice.Build(o))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "invoice_failed", "invoice could not be rendered")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// UpdateStatus appends a status transition. Sellers drive this from their
// dashboard; the log itself is append-only.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(req.Status)
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusProcessing, domain.OrderStatusShipped,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	orderID := chi.URLParam(r, "order_id")
	if err := h.orders.AppendStatus(r.Context(), orderID, status, req.Message); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order_not_found", "order does not exist")
			return
		}
		respondError(w, http.StatusBadGateway, "status_update_failed", "order status could not be updated")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *OrdersHandler) loadOrder(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return nil, false
	}

	o, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order_not_found", "order does not exist")
			return nil, false
		}
		respondError(w, http.StatusBadGateway, "orders_unavailable", "order could not be loaded")
		return nil, false
	}

	if o.BuyerID != userID && !containsSeller(o.SellerIDs, userID) {
		respondError(w, http.StatusForbidden, "forbidden", "order belongs to another user")
		return nil, false
	}
	return o, true
}

func containsSeller(sellerIDs []string, id string) bool {
	for _, s := range sellerIDs {
		if s == id {
			return true
		}
	}
	return false
}
