package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

var _ port.CheckoutPerformer = (*CheckoutService)(nil)

var ErrCheckoutInFlight = errors.New("checkout already in progress")

// Messages shown to the user. Validation messages match the order API's own
// wording so the inline check and the server-side check read the same.
const (
	MsgInvalidPhone     = "Please enter a valid phone number."
	MsgInvalidEmail     = "Please provide a valid email address."
	MsgMissingChallenge = "Please complete the verification challenge."
	MsgEmptyCart        = "Your cart is empty."
	MsgConnectivity     = "Network error. Please try again."
)

// A CheckoutService drives a submission through
// validating -> submitting -> succeeded, or back to idle on failure.
// Failures never mutate the cart or the entered form; a success archives
// the cart snapshot with the order id and clears the active cart.
type CheckoutService struct {
	store   port.CartStore
	gateway port.OrderPlacer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(
	store port.CartStore, gateway port.OrderPlacer,
) *CheckoutService {
	return &CheckoutService{
		store:    store,
		gateway:  gateway,
		inFlight: make(map[string]struct{}),
	}
}

func (s *CheckoutService) Checkout(
	ctx context.Context, sessionID string, form domain.CheckoutForm,
) (domain.OrderConfirmation, error) {
	const op = "CheckoutService.Checkout"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.OrderConfirmation{}, err
	}

	if !s.begin(sessionID) {
		return domain.OrderConfirmation{}, ErrCheckoutInFlight
	}
	defer s.end(sessionID)

	log.Debug("checkout", "stage", domain.StageValidating.String())
	if err := validateCheckoutForm(form); err != nil {
		return domain.OrderConfirmation{}, err
	}

	cart := s.store.Load(ctx, sessionID)
	if cart.Empty() {
		return domain.OrderConfirmation{}, &domain.CheckoutError{
			Message: MsgEmptyCart,
			Stage:   domain.StageValidating,
		}
	}

	log.Debug("checkout", "stage", domain.StageSubmitting.String())
	req := domain.NewCheckoutRequest(form, cart)
	conf, err := s.gateway.PlaceOrder(ctx, req)
	if err != nil {
		log.Warn("order submission failed", "err", err)
		return domain.OrderConfirmation{}, err
	}

	s.store.ArchiveOrder(ctx, sessionID, cart, conf.OrderID)
	s.store.Clear(ctx, sessionID)

	log.Info("order placed", "orderId", conf.OrderID)
	return conf, nil
}

// LastOrder returns the archived snapshot and order id of the most recent
// successful checkout for the session.
func (s *CheckoutService) LastOrder(
	ctx context.Context, sessionID string,
) (domain.Cart, string) {
	return s.store.LoadArchivedOrder(ctx, sessionID)
}

// begin marks the session as submitting. The submit affordance is busy for
// the whole network round trip; a second submit for the same session is
// refused instead of queued.
func (s *CheckoutService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
