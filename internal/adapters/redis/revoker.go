package redisad

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "auth:revoked:"

// Revoker blacklists logged-out tokens until their natural expiry.
type Revoker struct {
	c   redis.UniversalClient
	now func() time.Time
}

func NewRevoker(c redis.UniversalClient) *Revoker {
	return &Revoker{c: c, now: time.Now}
}

// tokens are hashed so the keyspace never holds a usable credential
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedPrefix + hex.EncodeToString(sum[:])
}

func (r *Revoker) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.c.Set(ctx, revokedKey(token), 1, ttl).Err()
}

func (r *Revoker) Revoked(ctx context.Context, token string) (bool, error) {
	n, err := r.c.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
