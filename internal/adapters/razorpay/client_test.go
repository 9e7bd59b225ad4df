package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_SendsAuthAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_key", user)
		assert.Equal(t, "shh", pass)

		var body orderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 250050, body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, "rcpt-1", body.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_9","entity":"order","amount":250050,"currency":"INR","receipt":"rcpt-1","status":"created"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "rzp_key", "shh", 50)
	require.NoError(t, err)
	o, err := c.CreateOrder(context.Background(), 250050, "INR", "rcpt-1")
	require.NoError(t, err)
	assert.Equal(t, "order_9", o.ID)
	assert.Equal(t, "created", o.Status)
	assert.EqualValues(t, 250050, o.Amount)
}

func TestCreateOrder_RetriesOn429WithRetryAfter(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":"order_ok","amount":100,"currency":"INR"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k", "s", 50)
	require.NoError(t, err)
	o, err := c.CreateOrder(context.Background(), 100, "INR", "r")
	require.NoError(t, err)
	assert.Equal(t, "order_ok", o.ID)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, _, _ := r.BasicAuth(); u == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	bad, _ := New(srv.URL, "bad", "s", 50)
	_, err := bad.CreateOrder(context.Background(), 1, "INR", "r")
	assert.ErrorIs(t, err, ErrUnauthorized)

	good, _ := New(srv.URL, "good", "s", 50)
	_, err = good.CreateOrder(context.Background(), 1, "INR", "r")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestCreateOrder_ContextCancelStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "k", "s", 50)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.CreateOrder(ctx, 1, "INR", "r")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestVerify(t *testing.T) {
	c, err := New("", "k", "secret", 1)
	require.NoError(t, err)

	sig := Sign("secret", "order_1", "pay_1")
	assert.Len(t, sig, 64)
	assert.True(t, c.Verify("order_1", "pay_1", sig))
	assert.False(t, c.Verify("order_1", "pay_2", sig), "different payment id")
	tampered := sig[:63] + "0"
	if sig[63] == '0' {
		tampered = sig[:63] + "1"
	}
	assert.False(t, c.Verify("order_1", "pay_1", tampered), "tampered signature")
	assert.False(t, c.Verify("order_1", "pay_1", ""))
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New("", "", "s", 1)
	assert.Error(t, err)
	_, err = New("", "k", "", 1)
	assert.Error(t, err)
}
