package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"staybook/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// fakeCache stores JSON like the Redis cache so round-trips are realistic.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	hits  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// fakeGateway accepts signatures of the form "<order>|<payment>".
type fakeGateway struct {
	err     error
	amounts []int64
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (domain.PaymentOrder, error) {
	if g.err != nil {
		return domain.PaymentOrder{}, g.err
	}
	g.amounts = append(g.amounts, amount)
	return domain.PaymentOrder{ID: "order_1", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *fakeGateway) Verify(orderID, paymentID, signature string) bool {
	return signature == orderID+"|"+paymentID
}

// fakeTokens issues the user id as the token.
type fakeTokens struct{}

func (fakeTokens) Issue(u domain.User) (string, time.Time, error) {
	return "tok-" + u.ID, time.Now().Add(time.Hour), nil
}

func (fakeTokens) Parse(token string) (domain.Claims, error) {
	if len(token) < 5 || token[:4] != "tok-" {
		return domain.Claims{}, errors.New("bad token")
	}
	return domain.Claims{UserID: token[4:], ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeRevoker struct{ revoked map[string]time.Time }

func (r *fakeRevoker) Revoke(ctx context.Context, token string, until time.Time) error {
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[token] = until
	return nil
}

func (r *fakeRevoker) Revoked(ctx context.Context, token string) (bool, error) {
	_, ok := r.revoked[token]
	return ok, nil
}
