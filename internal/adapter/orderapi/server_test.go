package orderapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/groveshop/storefront/internal/adapter/orderapi"
	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaker struct {
	conf domain.OrderConfirmation
	err  error
	ip   string
}

func (s *stubTaker) TakeOrder(
	_ context.Context, _ domain.CheckoutRequest, clientIP string,
) (domain.OrderConfirmation, error) {
	s.ip = clientIP
	return s.conf, s.err
}

func intakeRequest(t *testing.T, body string, sign bool) *http.Request {
	t.Helper()

	r := httptest.NewRequest(
		http.MethodPost, orderapi.OrderPath, strings.NewReader(body),
	)
	r.Header.Set("Content-Type", "application/json")
	if sign {
		r.Header.Set(
			orderapi.HeaderContentSHA256,
			orderapi.BodyDigest([]byte(body)),
		)
	}
	return r
}

const intakeBody = `{
	"phone": "555-123-4567",
	"email": "jane@example.com",
	"verification": "",
	"shipping": "12 Main St",
	"cf_token": "tok",
	"order": {
		"items": {
			"Croissant": {"qty":3,"pricePerUnit":3.25,"price":9.75,"imageUrl":"i"}
		},
		"totalQty": 3,
		"totalPrice": 9.75
	}
}`

func TestIntakeHandler(t *testing.T) {
	newMux := func(taker *stubTaker) *http.ServeMux {
		mux := http.NewServeMux()
		orderapi.RegisterOrderIntake(mux, taker)
		return mux
	}

	t.Run("Accepted", func(t *testing.T) {
		taker := &stubTaker{
			conf: domain.OrderConfirmation{OrderID: "A1B2C3D4"},
		}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, intakeBody, true))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"success": true,
			"orderId": "A1B2C3D4",
			"message": "Order placed successfully"
		}`, rec.Body.String())
	})

	t.Run("MissingDigest", func(t *testing.T) {
		taker := &stubTaker{}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, intakeBody, false))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t,
			`{"detail":"request integrity check failed"}`, rec.Body.String())
	})

	t.Run("TamperedBody", func(t *testing.T) {
		taker := &stubTaker{}
		r := intakeRequest(t, intakeBody, true)
		r.Header.Set(
			orderapi.HeaderContentSHA256,
			orderapi.BodyDigest([]byte("something else")),
		)
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		taker := &stubTaker{}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, "{not json", true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"invalid JSON data"}`, rec.Body.String())
	})

	t.Run("FieldRejection", func(t *testing.T) {
		taker := &stubTaker{err: &domain.OrderRejection{
			Issues: []domain.FieldIssue{
				{Loc: "phone", Msg: "bad phone"},
				{Loc: "email", Msg: "bad email"},
			},
		}}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, intakeBody, true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":[
			{"msg":"bad phone","loc":"phone"},
			{"msg":"bad email","loc":"email"}
		]}`, rec.Body.String())
	})

	t.Run("MessageRejection", func(t *testing.T) {
		taker := &stubTaker{err: &domain.OrderRejection{
			Message: "Our business hours are Mon-Sat 8am-8pm.",
		}}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, intakeBody, true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t,
			`{"detail":"Our business hours are Mon-Sat 8am-8pm."}`,
			rec.Body.String())
	})

	t.Run("UnexpectedFailure", func(t *testing.T) {
		taker := &stubTaker{err: errors.New("broker down")}
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, intakeRequest(t, intakeBody, true))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t,
			`{"detail":"Network error. Please try again."}`,
			rec.Body.String())
	})

	t.Run("ForwardedClientIP", func(t *testing.T) {
		taker := &stubTaker{}
		r := intakeRequest(t, intakeBody, true)
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		rec := httptest.NewRecorder()
		newMux(taker).ServeHTTP(rec, r)

		assert.Equal(t, "203.0.113.9", taker.ip)
	})
}
