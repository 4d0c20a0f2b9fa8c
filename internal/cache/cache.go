// Package cache provides a small JSON-over-Redis key-value cache plus a
// no-op fallback for deployments without Redis. The cache only ever holds
// derived data (the active-visitors list); the database stays the source of
// truth and every entry carries a TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a key-value cache backed by a Redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the Redis server at url (a redis:// URL) and verifies
// the connection with a ping.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.NewRedis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache.NewRedis: ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// Get unmarshals the value stored at key into dest.
// The first return value reports whether the key was present.
func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Redis.Get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache.Redis.Get: unmarshal: %w", err)
	}
	return true, nil
}

// Set stores value at key as JSON with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Redis.Set: marshal: %w", err)
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Set: %w", err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Remove: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop is the cache used when Redis is not configured.
// Get always misses and Set/Remove silently succeed.
type Noop struct{}

// Get always reports a miss.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set does nothing.
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

// Remove does nothing.
func (Noop) Remove(context.Context, string) error { return nil }
