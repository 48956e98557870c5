package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
	"github.com/groveshop/storefront/internal/core/service"
)

// POST /v1/checkout JSON form fields (200 OK, 400/409/502 with detail)

type CheckoutHandler struct {
	checkout port.CheckoutPerformer
}

func RegisterCheckout(mux *http.ServeMux, checkout port.CheckoutPerformer) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("POST /v1/checkout", h.Submit)
}

func (h CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.Submit"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	form := domain.CheckoutForm{
		Phone:        req.Phone,
		Email:        req.Email,
		Verification: req.Verification,
		Shipping:     req.Shipping,
		BotToken:     req.CFToken,
	}

	conf, err := h.checkout.Checkout(r.Context(), sessionID(r), form)
	if err != nil {
		h.writeFailure(w, log, err)
		return
	}

	writeJSON(w, op, http.StatusOK, CheckoutAccepted{
		OrderID:  conf.OrderID,
		Redirect: "/success/?orderId=" + conf.OrderID,
	})
}

func (h CheckoutHandler) writeFailure(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	const op = "CheckoutHandler.writeFailure"

	if errors.Is(err, service.ErrCheckoutInFlight) {
		writeJSON(w, op, http.StatusConflict, CheckoutRefused{
			Detail: "A submission is already in progress.",
		})
		return
	}

	var checkoutErr *domain.CheckoutError
	if errors.As(err, &checkoutErr) {
		status := http.StatusBadRequest
		if checkoutErr.Stage == domain.StageSubmitting {
			status = http.StatusBadGateway
		}
		writeJSON(w, op, status, CheckoutRefused{
			Detail:         checkoutErr.Message,
			ResetChallenge: checkoutErr.ResetChallenge,
		})
		return
	}

	log.Error("unexpected checkout failure", "err", err)
	writeJSON(w, op, http.StatusInternalServerError, CheckoutRefused{
		Detail:         "Something went wrong. Please try again.",
		ResetChallenge: true,
	})
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
