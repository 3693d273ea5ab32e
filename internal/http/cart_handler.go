package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tonpor888/planthubb-sub001/internal/cart"
	"github.com/tonpor888/planthubb-sub001/internal/catalog"
	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Catalog
}

func NewCartHandler(carts *cart.Store, catalog *catalog.Catalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.respondCart(w, r, userID, http.StatusOK)
}

// AddItem pulls the product's current price, stock and name from the catalog
// snapshot and inserts it. Quantity overflow against stock is clamped
// silently, so this never fails on "too many".
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product is not in the catalog")
		return
	}

	h.carts.AddItem(r.Context(), userID, domain.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Stock:     product.Stock,
		ImageURL:  product.ImageURL,
		SellerID:  product.SellerID,
	}, req.Quantity)

	h.respondCart(w, r, userID, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.carts.UpdateQuantity(r.Context(), userID, productID, req.Quantity)
	h.respondCart(w, r, userID, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.carts.RemoveItem(r.Context(), userID, chi.URLParam(r, "product_id"))
	h.respondCart(w, r, userID, http.StatusOK)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.carts.Clear(r.Context(), userID)
	h.respondCart(w, r, userID, http.StatusOK)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, userID string, status int) {
	respondJSON(w, status, CartResponseDTO{
		Items:     h.carts.Items(r.Context(), userID),
		ItemCount: h.carts.ItemCount(r.Context(), userID),
		Subtotal:  h.carts.Subtotal(r.Context(), userID),
	})
}
