package redisad

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCache_RoundTripAndExpiry(t *testing.T) {
	mr, c := newClient(t)
	cache := New(c)
	ctx := context.Background()

	type item struct{ Name string }
	var got item
	hit, err := cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "k", item{Name: "x"}, 30))
	hit, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "x", got.Name)

	mr.FastForward(31 * time.Second)
	hit, err = cache.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "k", item{Name: "y"}, 30))
	require.NoError(t, cache.Del(ctx, "k"))
	hit, _ = cache.Get(ctx, "k", &got)
	assert.False(t, hit)
}

func TestRevoker(t *testing.T) {
	mr, c := newClient(t)
	rv := NewRevoker(c)
	ctx := context.Background()

	revoked, err := rv.Revoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rv.Revoke(ctx, "tok", time.Now().Add(time.Minute)))
	revoked, err = rv.Revoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, mr.Exists(revokedPrefix+"tok"), "raw token must not be stored")

	mr.FastForward(2 * time.Minute)
	revoked, _ = rv.Revoked(ctx, "tok")
	assert.False(t, revoked)

	// already expired tokens need no entry
	require.NoError(t, rv.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	assert.Empty(t, mr.Keys())
}

func TestLocker_ExclusiveAndReleased(t *testing.T) {
	mr, c := newClient(t)
	l := NewLocker(c)
	l.wait = 100 * time.Millisecond
	l.retry = 10 * time.Millisecond
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "h1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "h1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	other, err := l.Lock(ctx, "h2")
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists(lockPrefix+"h1"))

	again, err := l.Lock(ctx, "h1")
	require.NoError(t, err)
	again()
}

func TestLocker_StaleUnlockKeepsNewHolder(t *testing.T) {
	mr, c := newClient(t)
	l := NewLocker(c)
	ctx := context.Background()

	stale, err := l.Lock(ctx, "h1")
	require.NoError(t, err)
	mr.FastForward(l.ttl + time.Second)

	fresh, err := l.Lock(ctx, "h1")
	require.NoError(t, err)
	stale()
	assert.True(t, mr.Exists(lockPrefix+"h1"))
	fresh()
	assert.False(t, mr.Exists(lockPrefix+"h1"))
}
