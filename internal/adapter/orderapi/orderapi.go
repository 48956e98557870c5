// Package orderapi is the outbound gateway to the order submission
// endpoint: POST {base}/api/order with a SHA-256 digest of the exact body
// bytes in the x-amz-content-sha256 header.
package orderapi

import (
	"encoding/json"
	"strings"

	"github.com/groveshop/storefront/internal/core/domain"
)

const (
	HeaderContentSHA256 = "x-amz-content-sha256"
	OrderPath           = "/api/order"
)

// Wire shapes of the order contract, shared by client and server.
type (
	orderRequest struct {
		Phone        string     `json:"phone"`
		Email        string     `json:"email"`
		Verification string     `json:"verification"`
		Shipping     string     `json:"shipping"`
		Order        cartRecord `json:"order"`
		CFToken      string     `json:"cf_token"`
	}

	cartRecord struct {
		Items      map[string]cartItemRecord `json:"items"`
		TotalQty   int                       `json:"totalQty"`
		TotalPrice float64                   `json:"totalPrice"`
	}

	cartItemRecord struct {
		Qty          int     `json:"qty"`
		PricePerUnit float64 `json:"pricePerUnit"`
		Price        float64 `json:"price"`
		ImageURL     string  `json:"imageUrl"`
	}

	orderAccepted struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
		Message string `json:"message,omitempty"`
	}

	orderRefused struct {
		Detail json.RawMessage `json:"detail"`
	}

	fieldDetail struct {
		Msg string `json:"msg"`
		Loc string `json:"loc,omitempty"`
	}
)

func toOrderRequest(req domain.CheckoutRequest) orderRequest {
	r := orderRequest{
		Phone:        req.Phone,
		Email:        req.Email,
		Verification: req.Verification,
		Shipping:     req.Shipping,
		CFToken:      req.BotToken,
		Order: cartRecord{
			Items:      make(map[string]cartItemRecord, len(req.Order.Items)),
			TotalQty:   req.Order.TotalQuantity,
			TotalPrice: req.Order.TotalPrice,
		},
	}
	for name, item := range req.Order.Items {
		r.Order.Items[name] = cartItemRecord{
			Qty:          item.Quantity,
			PricePerUnit: item.UnitPrice,
			Price:        item.LineTotal,
			ImageURL:     item.ImageRef,
		}
	}
	return r
}

func toCheckoutRequest(r orderRequest) domain.CheckoutRequest {
	cart := domain.NewCart()
	cart.TotalQuantity = r.Order.TotalQty
	cart.TotalPrice = r.Order.TotalPrice
	for name, item := range r.Order.Items {
		cart.Items[name] = domain.CartItem{
			Quantity:  item.Qty,
			UnitPrice: item.PricePerUnit,
			LineTotal: item.Price,
			ImageRef:  item.ImageURL,
		}
	}
	return domain.CheckoutRequest{
		Phone:        r.Phone,
		Email:        r.Email,
		Verification: r.Verification,
		Shipping:     r.Shipping,
		BotToken:     r.CFToken,
		Order:        cart,
	}
}

// detailMessage maps an error payload's detail to the user-visible message:
// a list of field errors joins each msg with ". ", a bare string is used
// verbatim, anything else falls back to the generic message.
func detailMessage(raw json.RawMessage, fallback string) string {
	var fields []fieldDetail
	if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
		msgs := make([]string, len(fields))
		for i, f := range fields {
			msgs[i] = f.Msg
		}
		return strings.Join(msgs, ". ")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}

	return fallback
}
