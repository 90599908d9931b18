// Package aicache provides a Redis-backed cache for AI responses so repeated
// generation requests for the same input do not burn API quota.
package aicache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized AI responses keyed by a hash of their input.
// A nil *Cache is valid and behaves as a cache that never hits.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Cache from a Redis URL. Returns an error if the URL cannot
// be parsed.
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		rdb: redis.NewClient(opts),
		ttl: ttl,
	}, nil
}

// Key derives a cache key from a namespace and the raw input material.
func Key(namespace, input string) string {
	sum := sha256.Sum256([]byte(input))
	return "aicache:" + namespace + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached payload for key, or (nil, false) on miss or error.
// Cache errors are swallowed: a broken cache must never break generation.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores payload under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}

// Ping verifies connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
