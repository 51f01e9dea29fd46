package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValkey(t *testing.T) PageCache {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c, err := New(s.Addr(), 100*time.Millisecond)
	require.NoError(t, err)
	return c
}

func TestValkeyCache_PublishCycle(t *testing.T) {
	c := newTestValkey(t)
	ctx := context.Background()

	require.NoError(t, c.Cycle("acme", 1, false))
	require.NoError(t, c.Set(ctx, "acme", "home:en:desktop", "v1-html"))

	val, ok, fresh, err := c.Get(ctx, "acme", "home:en:desktop")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, "v1-html", val)

	require.NoError(t, c.Cycle("acme", 2, false))
	assert.Equal(t, int64(2), c.Generation("acme"))

	val, ok, fresh, err = c.Get(ctx, "acme", "home:en:desktop")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, "v1-html", val)

	// two cycles out, version 1 is unreachable
	require.NoError(t, c.Cycle("acme", 3, false))
	_, ok, _, err = c.Get(ctx, "acme", "home:en:desktop")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValkeyCache_ForceCycle(t *testing.T) {
	c := newTestValkey(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	require.NoError(t, c.Cycle("acme", 1, true))

	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValkeyCache_TTLExpiry(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c, err := New(s.Addr(), 50*time.Millisecond)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	s.FastForward(100 * time.Millisecond)

	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValkeyCache_TransportErrorIsAMiss(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	c, err := New(s.Addr(), time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "acme", "home", "html"))
	s.Close()

	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.Error(t, err)
	assert.False(t, ok, "a transport failure must not report a hit")
}

func TestValkeyCache_Delete(t *testing.T) {
	c := newTestValkey(t)
	ctx := context.Background()

	require.NoError(t, c.Cycle("acme", 1, false))
	require.NoError(t, c.Set(ctx, "acme", "home", "current"))
	require.NoError(t, c.Cycle("acme", 2, false))
	require.NoError(t, c.Set(ctx, "acme", "home", "fresh"))

	// delete removes the entry from both reachable generations
	require.NoError(t, c.Delete(ctx, "acme", "home"))
	_, ok, _, err := c.Get(ctx, "acme", "home")
	assert.NoError(t, err)
	assert.False(t, ok)
}
