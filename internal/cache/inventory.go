package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Cache TTLs. Feed pages churn fast, profiles are comparatively stable.
const (
	UserTTL = 10 * time.Minute
	PostTTL = 5 * time.Minute
	FeedTTL = 30 * time.Second
)

// UserKey returns the cache key for a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// FeedKey returns the cache key for a feed page.
func FeedKey(limit, offset int) string {
	return fmt.Sprintf("feed:%d:%d", limit, offset)
}

// Invalidate removes one or more keys. Errors are logged, never returned:
// a stale entry expires on its own TTL.
func Invalidate(ctx context.Context, keys ...string) {
	c := GetClient()
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "cache invalidate failed", "keys", keys, "error", err)
	}
}

// InvalidateUser drops the cached profile for a user.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}

// InvalidateFeed drops every cached feed page. Feed keys are paginated so a
// SCAN over the prefix is the simplest correct invalidation.
func InvalidateFeed(ctx context.Context) {
	c := GetClient()
	if c == nil {
		return
	}
	iter := c.Scan(ctx, 0, "feed:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.WarnContext(ctx, "cache feed scan failed", "error", err)
		return
	}
	Invalidate(ctx, keys...)
}
