package cache

import (
	"context"
	"testing"

	"github.com/flexprice/billingcore/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(config.GetDefaultConfig())

	key := GenerateKey(PrefixLocation, "Europe/Paris")
	assert.Equal(t, "location:v1::Europe/Paris", key)

	c.Set(ctx, key, "paris", DefaultExpiration)
	c.Set(ctx, GenerateKey(PrefixPlan, "plan_1"), "plan", DefaultExpiration)

	got, found := c.Get(ctx, key)
	assert.True(t, found)
	assert.Equal(t, "paris", got)

	c.DeleteByPrefix(ctx, PrefixLocation)
	_, found = c.Get(ctx, key)
	assert.False(t, found)

	_, found = c.Get(ctx, GenerateKey(PrefixPlan, "plan_1"))
	assert.True(t, found)

	c.Flush(ctx)
	_, found = c.Get(ctx, GenerateKey(PrefixPlan, "plan_1"))
	assert.False(t, found)
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg)

	c.Set(ctx, "k", "v", DefaultExpiration)
	_, found := c.Get(ctx, "k")
	assert.False(t, found)
}
