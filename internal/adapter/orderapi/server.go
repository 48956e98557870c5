package orderapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

// POST /api/order JSON body per the order contract
// (200 OK, 400 Bad request with detail, 500 with detail)

type IntakeHandler struct {
	taker port.OrderTaker
}

func RegisterOrderIntake(mux *http.ServeMux, taker port.OrderTaker) {
	h := IntakeHandler{taker}
	mux.HandleFunc("POST "+OrderPath, h.PlaceOrder)
}

func (h IntakeHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	const op = "IntakeHandler.PlaceOrder"
	log := slog.With("op", op)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDetail(w, op, http.StatusBadRequest, "unreadable request body")
		log.Warn("failed to read body", "err", err)
		return
	}

	// Tamper detection: the digest must match the exact body bytes.
	digest := r.Header.Get(HeaderContentSHA256)
	if digest == "" || digest != BodyDigest(body) {
		writeDetail(w, op, http.StatusBadRequest,
			"request integrity check failed")
		log.Warn("body digest mismatch", "clientIp", clientIP(r))
		return
	}

	var req orderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeDetail(w, op, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	conf, err := h.taker.TakeOrder(
		r.Context(), toCheckoutRequest(req), clientIP(r),
	)
	if err != nil {
		h.writeRejection(w, log, err)
		return
	}

	writeJSON(w, op, http.StatusOK, orderAccepted{
		Success: true,
		OrderID: conf.OrderID,
		Message: "Order placed successfully",
	})
}

func (h IntakeHandler) writeRejection(
	w http.ResponseWriter, log *slog.Logger, err error,
) {
	const op = "IntakeHandler.writeRejection"

	var rejection *domain.OrderRejection
	if errors.As(err, &rejection) {
		if len(rejection.Issues) != 0 {
			fields := make([]fieldDetail, len(rejection.Issues))
			for i, issue := range rejection.Issues {
				fields[i] = fieldDetail{Msg: issue.Msg, Loc: issue.Loc}
			}
			writeDetail(w, op, http.StatusBadRequest, fields)
			return
		}
		writeDetail(w, op, http.StatusBadRequest, rejection.Message)
		return
	}

	log.Error("unexpected intake failure", "err", err)
	writeDetail(w, op, http.StatusInternalServerError,
		"Network error. Please try again.")
}

func writeDetail(w http.ResponseWriter, op string, status int, detail any) {
	b, err := json.Marshal(detail)
	if err != nil {
		slog.Error("failed to serialize detail", "op", op, "err", err)
		b = []byte(`"Network error. Please try again."`)
		status = http.StatusInternalServerError
	}
	writeJSON(w, op, status, orderRefused{Detail: b})
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
