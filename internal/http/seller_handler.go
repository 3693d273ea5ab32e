package http

import (
	"net/http"

	"github.com/tonpor888/planthubb-sub001/internal/seller"
)

type SellerHandler struct {
	metrics *seller.MetricsService
}

func NewSellerHandler(metrics *seller.MetricsService) *SellerHandler {
	return &SellerHandler{metrics: metrics}
}

// GetMetrics returns the authenticated seller's dashboard aggregates.
func (h *SellerHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	m, err := h.metrics.Metrics(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "metrics_unavailable", "seller metrics could not be loaded")
		return
	}

	respondJSON(w, http.StatusOK, m)
}
