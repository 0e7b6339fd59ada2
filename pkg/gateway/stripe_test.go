package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStripeTestServer(t *testing.T, handler http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewStripeGateway("sk_test_123", "whsec_test", "usd", time.Second)
	g.BaseURL = srv.URL
	return g
}

func TestToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"50.00":  5000,
		"0.01":   1,
		"123.45": 12345,
		"7":      700,
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, toMinorUnits(d), "amount %s", in)
	}
}

func TestStripeGateway_ChargePaymentMethod(t *testing.T) {
	g := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "sk_test_123", user)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "5000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
		assert.Equal(t, "pm_1", r.PostForm.Get("payment_method"))
		assert.Equal(t, "42", r.PostForm.Get("metadata[transaction_id]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret","status":"succeeded"}`))
	})

	charge, err := g.ChargePaymentMethod(context.Background(), "cus_1", decimal.RequireFromString("50.00"), "pm_1", 42)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", charge.Reference)
	assert.Equal(t, "pi_1_secret", charge.ClientSecret)
	assert.Equal(t, "succeeded", charge.Status)
}

func TestStripeGateway_CardDeclined(t *testing.T) {
	g := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	})

	_, err := g.ChargePaymentMethod(context.Background(), "cus_1", decimal.RequireFromString("50.00"), "pm_1", 42)
	require.Error(t, err)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "card_declined", gwErr.Code)
	assert.False(t, gwErr.Retryable)
}

func TestStripeGateway_ServerErrorIsRetryable(t *testing.T) {
	g := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.CreateCustomer(context.Background(), 1)
	require.Error(t, err)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.True(t, gwErr.Retryable)
}

func TestStripeGateway_GetPaymentMethod(t *testing.T) {
	g := newStripeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_methods/pm_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pm_1","type":"card","card":{"brand":"mastercard","last4":"5100"}}`))
	})

	info, err := g.GetPaymentMethod(context.Background(), "pm_1")
	require.NoError(t, err)
	assert.Equal(t, "card", info.Type)
	assert.Equal(t, "mastercard", info.Brand)
	assert.Equal(t, "5100", info.LastFour)
}
