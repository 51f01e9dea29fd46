package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_PublishCycle(t *testing.T) {
	c := newMemoryCache(time.Minute)
	ctx := context.Background()

	// version 1 is live
	require.NoError(t, c.Cycle("acme", 1, false))
	require.NoError(t, c.Set(ctx, "acme", "home:en:desktop", "v1-html"))

	val, ok, fresh, err := c.Get(ctx, "acme", "home:en:desktop")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, "v1-html", val)

	// publish cycles to version 2: the old entry is a stale fallback
	require.NoError(t, c.Cycle("acme", 2, false))
	val, ok, fresh, err = c.Get(ctx, "acme", "home:en:desktop")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, "v1-html", val)

	// re-render lands in the current segment
	require.NoError(t, c.Set(ctx, "acme", "home:en:desktop", "v2-html"))
	val, ok, fresh, _ = c.Get(ctx, "acme", "home:en:desktop")
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, "v2-html", val)

	// a second cycle evicts version 1 entirely
	require.NoError(t, c.Cycle("acme", 3, false))
	require.NoError(t, c.Cycle("acme", 4, false))
	_, ok, _, _ = c.Get(ctx, "acme", "home:en:desktop")
	assert.False(t, ok)
}

func TestMemoryCache_ForceCycleDropsFallback(t *testing.T) {
	c := newMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	require.NoError(t, c.Cycle("acme", 1, true))

	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Generation("acme"))
}

func TestMemoryCache_TenantsAreIsolated(t *testing.T) {
	c := newMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "acme-html"))
	require.NoError(t, c.Set(ctx, "globex", "home", "globex-html"))

	require.NoError(t, c.Cycle("acme", 1, true))

	_, ok, _, _ := c.Get(ctx, "acme", "home")
	assert.False(t, ok)

	val, ok, fresh, _ := c.Get(ctx, "globex", "home")
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, "globex-html", val)
}

func TestMemoryCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := &MemoryCache{tenants: make(map[string]*memoryTenant), ttl: -time.Second}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newMemoryCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	require.NoError(t, c.Delete(ctx, "acme", "home"))

	_, ok, _, _ := c.Get(ctx, "acme", "home")
	assert.False(t, ok)
}
