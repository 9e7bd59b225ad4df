// internal/adapters/razorpay/client.go
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"staybook/internal/adapters/observability"
	"staybook/internal/domain"
)

const DefaultBaseURL = "https://api.razorpay.com"

type Client struct {
	base   string
	hc     *http.Client
	key    string
	secret string
	rl     *rate.Limiter
}

func New(base, key, secret string, rps int) (*Client, error) {
	if key == "" || secret == "" {
		return nil, fmt.Errorf("razorpay key id and secret are required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 20 * time.Second},
		key:    key,
		secret: secret,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order of amount minor currency units.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (domain.PaymentOrder, error) {
	var out orderResponse
	if err := c.post(ctx, "/v1/orders", orderRequest{Amount: amount, Currency: currency, Receipt: receipt}, &out); err != nil {
		return domain.PaymentOrder{}, err
	}
	return domain.PaymentOrder{
		ID:       out.ID,
		Entity:   out.Entity,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
		Status:   out.Status,
	}, nil
}

// Verify checks signature against HMAC-SHA256(orderID|paymentID) keyed with
// the account secret.
func (c *Client) Verify(orderID, paymentID, signature string) bool {
	want := Sign(c.secret, orderID, paymentID)
	return hmac.Equal([]byte(want), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// Sign returns the hex signature the checkout widget hands back after payment.
func Sign(secret, orderID, paymentID string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(m.Sum(nil))
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("razorpay: unauthorized")
	ErrBadRequest   = errors.New("razorpay: bad request")
)

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// post sends a JSON body with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
// Order creation carries a receipt, so a replay after a lost response
// produces at most a second unpaid order.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.SetBasicAuth(c.key, c.secret)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "staybook/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("razorpay", path, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("razorpay", path, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusBadRequest:
			var ae apiError
			_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&ae)
			resp.Body.Close()
			return fmt.Errorf("%w: %s", ErrBadRequest, ae.Error.Description)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}

var _ domain.PaymentGateway = (*Client)(nil)
