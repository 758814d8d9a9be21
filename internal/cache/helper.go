package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetJSON fetches a key and unmarshals it into dest. Returns false on a miss
// or any cache failure so callers always fall through to the source of truth.
func GetJSON(ctx context.Context, key string, dest any) bool {
	c := GetClient()
	if c == nil {
		return false
	}

	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.WarnContext(ctx, "cache unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are logged and swallowed; the cache is never load-bearing.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	c := GetClient()
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

// Aside implements the cache-aside pattern: return the cached value when
// present, otherwise run fetch (which populates dest) and cache the result.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	SetJSON(ctx, key, dest, ttl)
	return nil
}
