package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/service"
)

const (
	cartBaseTTL = 15 * time.Minute
	// jitter spreads expirations so a burst of warm carts does not expire
	// at the same instant.
	cartTTLJitter = 2 * time.Minute
)

// CartCache stores serialized carts in Redis in front of the Mongo store.
type CartCache struct {
	client *redis.Client
}

func NewCartCache(client *redis.Client) *CartCache {
	return &CartCache{client: client}
}

func (c *CartCache) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := c.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}
		return nil, fmt.Errorf("cart cache get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("cart cache decode: %w", err)
	}
	return &cart, nil
}

func (c *CartCache) Set(ctx context.Context, userID string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart cache encode: %w", err)
	}

	ttl := cartBaseTTL + time.Duration(rand.Int63n(int64(cartTTLJitter)))
	if err := c.client.Set(ctx, cartKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cart cache set: %w", err)
	}
	return nil
}

func (c *CartCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("cart cache delete: %w", err)
	}
	return nil
}

func cartKey(userID string) string {
	return "cart:" + userID
}
