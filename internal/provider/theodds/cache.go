// internal/provider/theodds/cache.go
package theodds

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"paperbook/internal/util"
)

// Cache stores odds feed responses in Redis so repeated reads within
// the TTL do not burn API quota. A nil Cache is a valid no-op cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get unmarshals a cached value into dest and reports whether the key
// was present. Cache errors are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.GetLogger().Warn("odds cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		util.GetLogger().Warn("odds cache entry corrupt, discarding", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores a value under key for the cache TTL. Failures are logged
// and otherwise ignored; the feed result is still returned upstream.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		util.GetLogger().Warn("odds cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		util.GetLogger().Warn("odds cache write failed", "key", key, "error", err)
	}
}
