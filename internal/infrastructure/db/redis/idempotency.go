package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyGuard provides the fast-path replay check for checkout keys.
// The order store remains the source of truth; this only short-circuits the
// common retry case.
type IdempotencyGuard struct {
	client *redis.Client
}

func NewIdempotencyGuard(client *redis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client}
}

// Seen reports whether the key has already produced an order.
func (g *IdempotencyGuard) Seen(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, idempotencyKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return n > 0, nil
}

// Mark records the key as used (expires after idempotencyTTL).
func (g *IdempotencyGuard) Mark(ctx context.Context, key string) error {
	return g.client.Set(ctx, idempotencyKey(key), "1", idempotencyTTL).Err()
}

func idempotencyKey(key string) string {
	return "checkout:" + key
}
