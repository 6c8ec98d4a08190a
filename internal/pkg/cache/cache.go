package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache of JSON values in Redis. A Cache without a
// client passes every read to the loader and ignores invalidation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Enabled reports whether values are actually cached.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get decodes the value at key into target. found is false on a miss.
func (c *Cache) Get(ctx context.Context, key Key, target interface{}) (found bool, err error) {
	if !c.Enabled() {
		return false, nil
	}

	data, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value at key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key Key, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the given keys and everything that depends on them. An
// unscoped key drops every scope of its entity.
func (c *Cache) Invalidate(ctx context.Context, keys ...Key) error {
	if !c.Enabled() {
		return nil
	}

	var exact []string
	for _, k := range keys {
		for _, e := range expand(k) {
			if !e.IsAll() {
				exact = append(exact, e.String())
				continue
			}
			scoped, err := c.scan(ctx, e.pattern())
			if err != nil {
				return err
			}
			exact = append(exact, scoped...)
		}
	}

	if len(exact) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, exact...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *Cache) scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("cache scan %s: %w", pattern, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Fetch returns the cached value at key, or calls load and caches its result.
// Cache failures are logged and never fail the read.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("cache read failed", "key", key.String(), "error", err)
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		slog.Warn("cache write failed", "key", key.String(), "error", err)
	}
	return value, nil
}

// InvalidateOrLog is Invalidate for callers whose write already succeeded.
func (c *Cache) InvalidateOrLog(ctx context.Context, keys ...Key) {
	if err := c.Invalidate(ctx, keys...); err != nil {
		slog.Warn("cache invalidation failed", "error", err)
	}
}
