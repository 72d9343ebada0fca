// Package cache fronts expensive feed reads with a TTL key-value store.
// Implementations are injected where they are used; there is no package
// singleton, and callers own the lifecycle (connect at startup, Close at
// shutdown).
package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a TTL key-value cache. Values are serialized strings; a miss is
// reported through the bool, not an error. Errors mean the cache itself
// failed, and callers are expected to fall through to the source of truth.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLConfig is the per-feed TTL table. A zero duration disables caching
// for that feed. The defaults preserve the long-standing asymmetry:
// trending and bookmarks are cached, following and for-you are not.
type TTLConfig struct {
	Trending  time.Duration
	Bookmarks time.Duration
	Following time.Duration
	ForYou    time.Duration
}

var DefaultTTLConfig = TTLConfig{
	Trending:  5 * time.Minute,
	Bookmarks: time.Hour,
}

// TrendingKey caches one trending result per requested limit.
func TrendingKey(limit int) string {
	return fmt.Sprintf("trending:limit:%d", limit)
}

// BookmarksKey caches a user's bookmarked posts. Invalidated on every
// bookmark toggle by that user.
func BookmarksKey(userID string) string {
	return fmt.Sprintf("bookmarks:user:%s", userID)
}
