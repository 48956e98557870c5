package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

// POST   /v1/cart/items  add one of a product      (200 OK, 400 Bad request)
// PATCH  /v1/cart/items  set a product's quantity  (200 OK, 400 Bad request)
// DELETE /v1/cart/items  remove a product          (200 OK, 400 Bad request)

type CartHandler struct {
	cart port.CartKeeper
}

func RegisterCart(mux *http.ServeMux, cart port.CartKeeper) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/cart/items", h.SetQuantity)
	mux.HandleFunc("DELETE /v1/cart/items", h.RemoveItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"

	cart := h.cart.ViewCart(r.Context(), sessionID(r))
	writeCart(w, op, cart)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Name == "" || req.PricePerUnit < 0 {
		http.Error(w, "invalid item", http.StatusBadRequest)
		return
	}

	cart := h.cart.AddItem(
		r.Context(), sessionID(r), req.Name, req.PricePerUnit, req.ImageURL,
	)
	writeCart(w, op, cart)
}

func (h CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.SetQuantity"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Name == "" || req.Qty < 0 {
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	cart := h.cart.SetQuantity(r.Context(), sessionID(r), req.Name, req.Qty)
	writeCart(w, op, cart)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	var req RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cart := h.cart.RemoveItem(r.Context(), sessionID(r), req.Name)
	writeCart(w, op, cart)
}

func writeCart(w http.ResponseWriter, op string, cart domain.Cart) {
	resp := CartResponse{
		Items:      make(map[string]CartItemResponse, len(cart.Items)),
		TotalQty:   cart.TotalQuantity,
		TotalPrice: cart.TotalPrice,
	}
	for name, item := range cart.Items {
		resp.Items[name] = CartItemResponse{
			Qty:          item.Quantity,
			PricePerUnit: item.UnitPrice,
			Price:        item.LineTotal,
			ImageURL:     item.ImageRef,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
