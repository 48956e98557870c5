package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/groveshop/storefront/internal/adapter/storage"
	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

// GET /v1/products        product list  (200 OK)
// GET /v1/products/{name} one product   (200 OK, 404 Not found)

type CatalogHandler struct {
	catalog port.CatalogProvider
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogProvider) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{name}", h.GetProduct)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"

	ps, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		slog.Error("failed to list products", "op", op, "err", err)
		return
	}

	resp := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, op, http.StatusOK, resp)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"

	p, err := h.catalog.ReadProduct(r.Context(), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "no such product", http.StatusNotFound)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		slog.Error("failed to read product", "op", op, "err", err)
		return
	}

	writeJSON(w, op, http.StatusOK, toProductResponse(p))
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}
