package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

const lockPrefix = "lock:booking:"

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a SET NX lease per hotel. The lease expires on its own if the
// holder dies before unlocking.
type Locker struct {
	c     redis.UniversalClient
	ttl   time.Duration
	wait  time.Duration
	retry time.Duration
}

func NewLocker(c redis.UniversalClient) *Locker {
	return &Locker{c: c, ttl: 10 * time.Second, wait: 3 * time.Second, retry: 50 * time.Millisecond}
}

func (l *Locker) Lock(ctx context.Context, hotelID string) (func(), error) {
	key := lockPrefix + hotelID
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.c.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// detached so a cancelled request still releases
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := release.Run(ctx, l.c, []string{key}, token).Err(); err != nil {
					log.Warn().Err(err).Str("hotel", hotelID).Msg("booking lock release failed")
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("booking lock busy: %w", domain.ErrConflict)
		}
		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}
