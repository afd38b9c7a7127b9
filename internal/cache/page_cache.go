// internal/cache/page_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lojinha/lojinha-backend/internal/models"
)

// PageCache caches public storefront reads. The durable copy in Postgres is
// canonical; entries here expire on TTL and are invalidated on save. A nil
// *PageCache disables caching entirely.
type PageCache struct {
	redis *RedisClient
	ttl   time.Duration
}

func NewPageCache(redis *RedisClient, ttl time.Duration) *PageCache {
	return &PageCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *PageCache) key(username string) string {
	return fmt.Sprintf("storefront:public:%s", username)
}

// GetStorefront returns the cached storefront for a username, or (nil, nil)
// on a miss.
func (c *PageCache) GetStorefront(ctx context.Context, username string) (*models.Storefront, error) {
	if c == nil {
		return nil, nil
	}

	raw, err := c.redis.Get(ctx, c.key(username))
	if err != nil {
		if IsMiss(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("page cache read failed: %w", err)
	}

	var storefront models.Storefront
	if err := json.Unmarshal([]byte(raw), &storefront); err != nil {
		// A corrupt entry is treated as a miss; the canonical copy wins.
		return nil, nil
	}
	return &storefront, nil
}

// SetStorefront stores the canonical storefront under its username.
func (c *PageCache) SetStorefront(ctx context.Context, storefront *models.Storefront) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(storefront)
	if err != nil {
		return fmt.Errorf("failed to marshal storefront for cache: %w", err)
	}
	return c.redis.Set(ctx, c.key(storefront.Username), string(raw), c.ttl)
}

// Invalidate drops the cached entry for a username.
func (c *PageCache) Invalidate(ctx context.Context, username string) error {
	if c == nil {
		return nil
	}
	return c.redis.Delete(ctx, c.key(username))
}
