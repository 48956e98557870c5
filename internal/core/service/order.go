package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
)

var _ port.OrderTaker = (*OrderService)(nil)

const (
	MsgBusinessHours   = "Our business hours are Mon-Sat 8am-8pm."
	MsgMinOrderSize    = "Our minimum order size for delivery is 3 items."
	MsgSecurityCheck   = "Security check failed"
	MsgPublishFailed   = "Failed to send order confirmation. Please try again."
	minOrderQuantity   = 3
	totalPriceEpsilon  = 0.01
	businessOpenHour   = 8
	businessClosedHour = 20
)

// An OrderService is the intake side of the order contract: it validates a
// checkout request, gates it on business hours and the bot challenge, mints
// an order id and publishes the accepted order to the events topic.
type OrderService struct {
	verifier port.ChallengeVerifier
	events   port.OrderEventsProducer
	location *time.Location
	now      func() time.Time
}

func NewOrderService(
	verifier port.ChallengeVerifier,
	events port.OrderEventsProducer,
	location *time.Location,
	now func() time.Time,
) OrderService {
	if now == nil {
		now = time.Now
	}
	return OrderService{verifier, events, location, now}
}

func (s OrderService) TakeOrder(
	ctx context.Context, req domain.CheckoutRequest, clientIP string,
) (domain.OrderConfirmation, error) {
	const op = "OrderService.TakeOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	if issues := validateOrderRequest(req); len(issues) != 0 {
		return domain.OrderConfirmation{},
			&domain.OrderRejection{Issues: issues}
	}

	if !s.withinBusinessHours() {
		return domain.OrderConfirmation{},
			&domain.OrderRejection{Message: MsgBusinessHours}
	}

	orderID := mintOrderID()

	// The honeypot field is invisible to humans. A filled value gets a
	// throwaway confirmation so the bot never learns it was caught.
	if req.Verification != "" {
		log.Warn("honeypot triggered", "clientIp", clientIP)
		return domain.OrderConfirmation{OrderID: orderID}, nil
	}

	human, err := s.verifier.Verify(ctx, req.BotToken, clientIP)
	if err != nil {
		log.Error("challenge verification unavailable", "err", err)
		return domain.OrderConfirmation{},
			&domain.OrderRejection{Message: MsgSecurityCheck}
	}
	if !human {
		return domain.OrderConfirmation{},
			&domain.OrderRejection{Message: MsgSecurityCheck}
	}

	placed := domain.PlacedOrder{
		OrderID:  orderID,
		Phone:    req.Phone,
		Email:    strings.ToLower(req.Email),
		Shipping: req.Shipping,
		Order:    req.Order,
	}
	if err := s.events.ProduceOrderPlaced(ctx, placed); err != nil {
		log.Error("failed to publish order", "err", err)
		return domain.OrderConfirmation{},
			&domain.OrderRejection{Message: MsgPublishFailed}
	}

	log.Info("order accepted", "orderId", orderID,
		"totalQty", req.Order.TotalQuantity)
	return domain.OrderConfirmation{OrderID: orderID}, nil
}

func (s OrderService) withinBusinessHours() bool {
	now := s.now().In(s.location)
	if now.Weekday() == time.Sunday {
		return false
	}
	h := now.Hour()
	return h >= businessOpenHour && h < businessClosedHour
}

func validateOrderRequest(req domain.CheckoutRequest) []domain.FieldIssue {
	var issues []domain.FieldIssue

	if !ValidPhone(req.Phone) {
		issues = append(issues, domain.FieldIssue{
			Loc: "phone", Msg: MsgInvalidPhone,
		})
	}
	if !ValidEmail(req.Email) {
		issues = append(issues, domain.FieldIssue{
			Loc: "email", Msg: MsgInvalidEmail,
		})
	}

	var sumQty int
	var sumPrice float64
	for name, item := range req.Order.Items {
		if item.Quantity <= 0 {
			issues = append(issues, domain.FieldIssue{
				Loc: "order.items." + name,
				Msg: "Quantity must be greater than 0.",
			})
		}
		if item.UnitPrice < 0 {
			issues = append(issues, domain.FieldIssue{
				Loc: "order.items." + name,
				Msg: "Price must be non-negative.",
			})
		}
		sumQty += item.Quantity
		sumPrice += item.LineTotal
	}

	if req.Order.TotalQuantity < minOrderQuantity {
		issues = append(issues, domain.FieldIssue{
			Loc: "order.totalQty", Msg: MsgMinOrderSize,
		})
	}
	if sumQty != req.Order.TotalQuantity {
		issues = append(issues, domain.FieldIssue{
			Loc: "order.totalQty",
			Msg: "Total quantity does not match sum of item quantities.",
		})
	}
	if math.Abs(sumPrice-req.Order.TotalPrice) > totalPriceEpsilon {
		issues = append(issues, domain.FieldIssue{
			Loc: "order.totalPrice",
			Msg: "Total price does not match sum of item prices.",
		})
	}

	return issues
}

func mintOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
