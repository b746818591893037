package cache

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/billingcore/internal/config"
	goCache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
}

// Module provides the process wide cache
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewInMemoryCache),
	)
}

// NewInMemoryCache creates a cache honouring cfg.Cache.Enabled
func NewInMemoryCache(cfg *config.Configuration) Cache {
	return &InMemoryCache{
		cache:   goCache.New(DefaultExpiration, DefaultCleanupInterval),
		enabled: cfg.Cache.Enabled,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}

	span := StartCacheSpan(ctx, "inmemory", "get", map[string]interface{}{"key": key})
	value, found := c.cache.Get(key)
	finishSpan(span, &found)
	return value, found
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}

	span := StartCacheSpan(ctx, "inmemory", "set", map[string]interface{}{"key": key})
	c.cache.Set(key, value, expiration)
	finishSpan(span, nil)
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	if !c.enabled {
		return
	}
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	if !c.enabled {
		return
	}
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(_ context.Context) {
	if !c.enabled {
		return
	}
	c.cache.Flush()
}
