package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache implements the cache port on top of go-redis. Multi-key writes
// and deletes are pipelined so both keys of a record travel in one round trip.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the value under key. A redis.Nil reply is a clean miss, not an
// error.
func (c *UserCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return val, true, nil
}

// SetMulti writes all entries with the same expiry in a single pipeline.
func (c *UserCache) SetMulti(ctx context.Context, entries map[string]string, ttl time.Duration) error {
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, key, value, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set pipeline: %w", err)
	}
	return nil
}

// Delete removes a single key.
func (c *UserCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// DeleteMulti removes all keys in a single pipeline.
func (c *UserCache) DeleteMulti(ctx context.Context, keys []string) error {
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Del(ctx, key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete pipeline: %w", err)
	}
	return nil
}
