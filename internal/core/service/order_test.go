package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChallengeVerifier struct {
	mock.Mock
}

func (m *MockChallengeVerifier) Verify(
	ctx context.Context, token, clientIP string,
) (bool, error) {
	args := m.Called(ctx, token, clientIP)
	return args.Bool(0), args.Error(1)
}

type MockOrderEventsProducer struct {
	mock.Mock
}

func (m *MockOrderEventsProducer) ProduceOrderPlaced(
	ctx context.Context, order domain.PlacedOrder,
) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// Wednesday 2026-03-04 noon in New York, well inside business hours.
func openHoursNow() time.Time {
	return time.Date(2026, time.March, 4, 17, 0, 0, 0, time.UTC)
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func validRequest() domain.CheckoutRequest {
	cart := domain.NewCart()
	cart = cart.AddItem("Sourdough Loaf", 6.50, "img")
	cart = cart.AddItem("Croissant", 3.25, "img")
	cart = cart.SetQuantity("Croissant", 2)
	return domain.CheckoutRequest{
		Phone:    "555-123-4567",
		Email:    "Jane@Example.com",
		Shipping: "12 Main St",
		BotToken: "tok",
		Order:    cart,
	}
}

func TestTakeOrderAccepted(t *testing.T) {
	verifier := new(MockChallengeVerifier)
	events := new(MockOrderEventsProducer)
	s := service.NewOrderService(verifier, events, newYork(t), openHoursNow)

	verifier.On("Verify", t.Context(), "tok", "1.2.3.4").Return(true, nil)
	events.On("ProduceOrderPlaced", t.Context(), mock.Anything).Return(nil)

	conf, err := s.TakeOrder(t.Context(), validRequest(), "1.2.3.4")
	require.NoError(t, err)
	assert.Len(t, conf.OrderID, 8)
	assert.Equal(t, strings.ToUpper(conf.OrderID), conf.OrderID)

	placed := events.Calls[0].Arguments.Get(1).(domain.PlacedOrder)
	assert.Equal(t, conf.OrderID, placed.OrderID)
	assert.Equal(t, "jane@example.com", placed.Email)
	assert.Equal(t, 3, placed.Order.TotalQuantity)
}

func TestTakeOrderFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.CheckoutRequest)
		wantLoc string
		wantMsg string
	}{
		{
			name: "BadPhone",
			mutate: func(r *domain.CheckoutRequest) {
				r.Phone = "12345"
			},
			wantLoc: "phone",
			wantMsg: service.MsgInvalidPhone,
		},
		{
			name: "BadEmail",
			mutate: func(r *domain.CheckoutRequest) {
				r.Email = "not-an-email"
			},
			wantLoc: "email",
			wantMsg: service.MsgInvalidEmail,
		},
		{
			name: "BelowMinimumOrderSize",
			mutate: func(r *domain.CheckoutRequest) {
				cart := domain.NewCart()
				cart = cart.AddItem("Croissant", 3.25, "img")
				r.Order = cart
			},
			wantLoc: "order.totalQty",
			wantMsg: service.MsgMinOrderSize,
		},
		{
			name: "TotalPriceMismatch",
			mutate: func(r *domain.CheckoutRequest) {
				r.Order.TotalPrice += 0.50
			},
			wantLoc: "order.totalPrice",
			wantMsg: "Total price does not match sum of item prices.",
		},
		{
			name: "TotalQuantityMismatch",
			mutate: func(r *domain.CheckoutRequest) {
				r.Order.TotalQuantity++
			},
			wantLoc: "order.totalQty",
			wantMsg: "Total quantity does not match sum of item quantities.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := new(MockChallengeVerifier)
			events := new(MockOrderEventsProducer)
			s := service.NewOrderService(
				verifier, events, newYork(t), openHoursNow,
			)

			req := validRequest()
			tc.mutate(&req)

			_, err := s.TakeOrder(t.Context(), req, "1.2.3.4")
			require.Error(t, err)

			var rejection *domain.OrderRejection
			require.ErrorAs(t, err, &rejection)
			require.NotEmpty(t, rejection.Issues)
			assert.Contains(t, rejection.Issues, domain.FieldIssue{
				Loc: tc.wantLoc, Msg: tc.wantMsg,
			})
			events.AssertNotCalled(t, "ProduceOrderPlaced")
		})
	}
}

func TestTakeOrderBusinessHours(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time // UTC instants; New York is UTC-5 in winter
		want bool
	}{
		{
			name: "WednesdayNoon",
			now:  time.Date(2026, time.March, 4, 17, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "SaturdayMorning",
			now:  time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "Sunday",
			now:  time.Date(2026, time.March, 8, 17, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "BeforeOpen",
			now:  time.Date(2026, time.March, 4, 12, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "AfterClose",
			now:  time.Date(2026, time.March, 5, 1, 30, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := new(MockChallengeVerifier)
			events := new(MockOrderEventsProducer)
			s := service.NewOrderService(
				verifier, events, newYork(t),
				func() time.Time { return tc.now },
			)

			verifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).
				Return(true, nil).Maybe()
			events.On("ProduceOrderPlaced", mock.Anything, mock.Anything).
				Return(nil).Maybe()

			_, err := s.TakeOrder(t.Context(), validRequest(), "1.2.3.4")
			if tc.want {
				assert.NoError(t, err)
				return
			}
			var rejection *domain.OrderRejection
			require.ErrorAs(t, err, &rejection)
			assert.Equal(t, service.MsgBusinessHours, rejection.Message)
		})
	}
}

func TestTakeOrderHoneypot(t *testing.T) {
	verifier := new(MockChallengeVerifier)
	events := new(MockOrderEventsProducer)
	s := service.NewOrderService(verifier, events, newYork(t), openHoursNow)

	req := validRequest()
	req.Verification = "gotcha"

	conf, err := s.TakeOrder(t.Context(), req, "1.2.3.4")
	require.NoError(t, err)
	assert.Len(t, conf.OrderID, 8)

	// throwaway confirmation: nothing verified, nothing published
	verifier.AssertNotCalled(t, "Verify")
	events.AssertNotCalled(t, "ProduceOrderPlaced")
}

func TestTakeOrderChallengeRefused(t *testing.T) {
	t.Run("NotHuman", func(t *testing.T) {
		verifier := new(MockChallengeVerifier)
		events := new(MockOrderEventsProducer)
		s := service.NewOrderService(verifier, events, newYork(t), openHoursNow)

		verifier.On("Verify", t.Context(), "tok", "1.2.3.4").
			Return(false, nil)

		_, err := s.TakeOrder(t.Context(), validRequest(), "1.2.3.4")
		var rejection *domain.OrderRejection
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, service.MsgSecurityCheck, rejection.Message)
		events.AssertNotCalled(t, "ProduceOrderPlaced")
	})

	t.Run("VerifierUnavailable", func(t *testing.T) {
		verifier := new(MockChallengeVerifier)
		events := new(MockOrderEventsProducer)
		s := service.NewOrderService(verifier, events, newYork(t), openHoursNow)

		verifier.On("Verify", t.Context(), "tok", "1.2.3.4").
			Return(false, errors.New("siteverify timeout"))

		_, err := s.TakeOrder(t.Context(), validRequest(), "1.2.3.4")
		var rejection *domain.OrderRejection
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, service.MsgSecurityCheck, rejection.Message)
	})
}

func TestTakeOrderPublishFailed(t *testing.T) {
	verifier := new(MockChallengeVerifier)
	events := new(MockOrderEventsProducer)
	s := service.NewOrderService(verifier, events, newYork(t), openHoursNow)

	verifier.On("Verify", t.Context(), "tok", "1.2.3.4").Return(true, nil)
	events.On("ProduceOrderPlaced", t.Context(), mock.Anything).
		Return(errors.New("broker down"))

	_, err := s.TakeOrder(t.Context(), validRequest(), "1.2.3.4")
	var rejection *domain.OrderRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, service.MsgPublishFailed, rejection.Message)
}

func TestValidPhone(t *testing.T) {
	accepted := []string{
		"555-123-4567",
		"+1 555 123 4567",
		"5551234567",
		"555.123.4567",
	}
	rejected := []string{
		"12345",
		"555-123-456",
		"phone",
		"",
	}

	for _, phone := range accepted {
		assert.True(t, service.ValidPhone(phone), phone)
	}
	for _, phone := range rejected {
		assert.False(t, service.ValidPhone(phone), phone)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, service.ValidEmail("a@b.co"))
	assert.True(t, service.ValidEmail("jane.doe@example.com"))
	assert.False(t, service.ValidEmail("not-an-email"))
	assert.False(t, service.ValidEmail("a@b"))
	assert.False(t, service.ValidEmail(""))
}
