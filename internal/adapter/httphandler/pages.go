package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/groveshop/storefront/internal/adapter/view"
	"github.com/groveshop/storefront/internal/core/port"
)

// Page routes are registered on the index documents the edge rewrite
// produces, so "/cart" and "/cart/" both land on "/cart/index.html".
type PagesHandler struct {
	catalog  port.CatalogProvider
	cart     port.CartKeeper
	checkout port.CheckoutPerformer
	renderer view.Renderer
}

func RegisterPages(
	mux *http.ServeMux,
	catalog port.CatalogProvider,
	cart port.CartKeeper,
	checkout port.CheckoutPerformer,
	renderer view.Renderer,
) {
	h := PagesHandler{catalog, cart, checkout, renderer}
	mux.HandleFunc("GET /index.html", h.Catalog)
	mux.HandleFunc("GET /cart/index.html", h.Cart)
	mux.HandleFunc("GET /checkout/index.html", h.Checkout)
	mux.HandleFunc("GET /success/index.html", h.Success)
}

func (h PagesHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	const op = "PagesHandler.Catalog"
	log := slog.With("op", op)

	ps, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Error("failed to list products", "err", err)
		return
	}

	cart := h.cart.ViewCart(r.Context(), sessionID(r))
	h.renderPage(w, op, func() error {
		return h.renderer.RenderCatalog(w, view.BuildCatalogView(ps, cart))
	})
}

func (h PagesHandler) Cart(w http.ResponseWriter, r *http.Request) {
	const op = "PagesHandler.Cart"

	cart := h.cart.ViewCart(r.Context(), sessionID(r))
	h.renderPage(w, op, func() error {
		return h.renderer.RenderCart(w, view.BuildCartView(cart))
	})
}

func (h PagesHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "PagesHandler.Checkout"

	cart := h.cart.ViewCart(r.Context(), sessionID(r))
	h.renderPage(w, op, func() error {
		return h.renderer.RenderCheckout(w, view.BuildCartView(cart))
	})
}

// Success shows the order id from the query string, falling back to a
// generic confirmation, and unconditionally clears the active cart.
func (h PagesHandler) Success(w http.ResponseWriter, r *http.Request) {
	const op = "PagesHandler.Success"

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		_, orderID = h.checkout.LastOrder(r.Context(), sessionID(r))
	}

	h.cart.ClearCart(r.Context(), sessionID(r))

	h.renderPage(w, op, func() error {
		return h.renderer.RenderSuccess(w, view.BuildSuccessView(orderID))
	})
}

func (h PagesHandler) renderPage(
	w http.ResponseWriter, op string, render func() error,
) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(); err != nil {
		slog.Error("failed to render page", "op", op, "err", err)
	}
}
