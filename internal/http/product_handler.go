package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tonpor888/planthubb-sub001/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(catalog *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.List())
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.catalog.Get(chi.URLParam(r, "product_id"))
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product is not in the catalog")
		return
	}
	respondJSON(w, http.StatusOK, product)
}
