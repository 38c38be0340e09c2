package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL is how long a processed meeting id suppresses re-delivery.
// Fireflies redelivers webhooks within minutes; a day is comfortably past
// any redelivery window without pinning keys forever.
const guardTTL = 24 * time.Hour

// RedisGuard suppresses duplicate deliveries across instances using SETNX
type RedisGuard struct {
	client *redis.Client
	prefix string
}

// NewRedisGuard creates a Redis-backed delivery guard
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client, prefix: "delivery:"}
}

// Acquire claims the key; false means it was already processed
func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("guard setnx: %w", err)
	}
	return ok, nil
}

// MemoryGuard is the single-instance fallback when Redis is not configured
type MemoryGuard struct {
	store *MemoryStore
}

// NewMemoryGuard creates an in-memory delivery guard
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{store: NewMemoryStore()}
}

// Acquire claims the key; false means it was already processed
func (g *MemoryGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.store.SetIfAbsent("delivery:"+key, guardTTL), nil
}
