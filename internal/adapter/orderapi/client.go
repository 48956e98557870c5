package orderapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

const MsgGenericFailure = "Something went wrong. Please try again."

var _ port.OrderPlacer = (*Client)(nil)

// A Client submits checkout requests to the remote order endpoint. One
// attempt per submission, no retry: a checkout is not idempotent from the
// caller's point of view.
type Client struct {
	baseURL string
	httpCl  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return Client{
		baseURL: baseURL,
		httpCl:  &http.Client{Timeout: timeout},
	}
}

func (c Client) PlaceOrder(
	ctx context.Context, req domain.CheckoutRequest,
) (domain.OrderConfirmation, error) {
	const op = "Client.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(toOrderRequest(req))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+OrderPath, bytes.NewReader(body),
	)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderContentSHA256, BodyDigest(body))

	resp, err := c.httpCl.Do(httpReq)
	if err != nil {
		log.Warn("order endpoint unreachable", "err", err)
		return domain.OrderConfirmation{}, &domain.CheckoutError{
			Message:        "Network error. Please try again.",
			Stage:          domain.StageSubmitting,
			ResetChallenge: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.OrderConfirmation{}, c.refusalError(resp)
	}

	var accepted orderAccepted
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		log.Warn("unreadable success payload", "err", err)
		return domain.OrderConfirmation{}, &domain.CheckoutError{
			Message:        MsgGenericFailure,
			Stage:          domain.StageSubmitting,
			ResetChallenge: true,
		}
	}

	return domain.OrderConfirmation{OrderID: accepted.OrderID}, nil
}

func (c Client) refusalError(resp *http.Response) *domain.CheckoutError {
	msg := MsgGenericFailure

	var refused orderRefused
	if err := json.NewDecoder(resp.Body).Decode(&refused); err == nil &&
		len(refused.Detail) > 0 {
		msg = detailMessage(refused.Detail, MsgGenericFailure)
	}

	return &domain.CheckoutError{
		Message:        msg,
		Stage:          domain.StageSubmitting,
		ResetChallenge: true,
	}
}

// BodyDigest is the hex SHA-256 of the exact serialized request bytes.
func BodyDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
