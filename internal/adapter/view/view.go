// Package view projects domain state into the storefront pages. It holds
// no business logic: view models are built from the Cart and the catalog
// and handed to templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/groveshop/storefront/internal/core/domain"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Quantities up to this bound render as a discrete selector; larger ones
// render as a free-form numeric input. Both carry the current quantity, so
// crossing the bound preserves it.
const discreteQuantityMax = 9

type (
	ProductCard struct {
		Name        string
		Description string
		PriceLabel  string
		ImageURL    string
	}

	CartLine struct {
		Name          string
		PriceLabel    string
		LineLabel     string
		ImageURL      string
		Quantity      int
		Discrete      bool
		SelectOptions []int
	}

	CartView struct {
		Lines      []CartLine
		BadgeCount int
		TotalLabel string
		Empty      bool
	}

	CatalogView struct {
		Cards      []ProductCard
		BadgeCount int
	}

	SuccessView struct {
		OrderID  string
		Fallback bool
	}
)

func BuildCatalogView(ps []domain.Product, cart domain.Cart) CatalogView {
	v := CatalogView{BadgeCount: cart.TotalQuantity}
	for _, p := range ps {
		v.Cards = append(v.Cards, ProductCard{
			Name:        p.Name,
			Description: p.Description,
			PriceLabel:  priceLabel(p.Price),
			ImageURL:    p.ImageURL,
		})
	}
	return v
}

func BuildCartView(cart domain.Cart) CartView {
	v := CartView{
		BadgeCount: cart.TotalQuantity,
		TotalLabel: priceLabel(cart.TotalPrice),
		Empty:      cart.Empty(),
	}
	if v.Empty {
		return v
	}

	names := make([]string, 0, len(cart.Items))
	for name := range cart.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		item := cart.Items[name]
		line := CartLine{
			Name:       name,
			PriceLabel: priceLabel(item.UnitPrice),
			LineLabel:  priceLabel(item.LineTotal),
			ImageURL:   item.ImageRef,
			Quantity:   item.Quantity,
			Discrete:   item.Quantity <= discreteQuantityMax,
		}
		if line.Discrete {
			line.SelectOptions = discreteOptions()
		}
		v.Lines = append(v.Lines, line)
	}
	return v
}

func BuildSuccessView(orderID string) SuccessView {
	return SuccessView{OrderID: orderID, Fallback: orderID == ""}
}

func discreteOptions() []int {
	opts := make([]int, discreteQuantityMax)
	for i := range opts {
		opts[i] = i + 1
	}
	return opts
}

func priceLabel(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (Renderer, error) {
	const op = "NewRenderer"

	tmpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return Renderer{}, fmt.Errorf("%s: %w", op, err)
	}
	return Renderer{tmpl}, nil
}

func (r Renderer) RenderCatalog(w io.Writer, v CatalogView) error {
	return r.render(w, "catalog.gohtml", v)
}

func (r Renderer) RenderCart(w io.Writer, v CartView) error {
	return r.render(w, "cart.gohtml", v)
}

func (r Renderer) RenderCheckout(w io.Writer, v CartView) error {
	return r.render(w, "checkout.gohtml", v)
}

func (r Renderer) RenderSuccess(w io.Writer, v SuccessView) error {
	return r.render(w, "success.gohtml", v)
}

func (r Renderer) render(w io.Writer, name string, v any) error {
	const op = "Renderer.render"

	if err := r.tmpl.ExecuteTemplate(w, name, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
