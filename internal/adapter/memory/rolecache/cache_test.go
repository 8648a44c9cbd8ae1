package rolecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCacheExpiresEntries(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := New(clock.Now)
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "u1", "admin", time.Minute))

	role, ok, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", role)

	clock.Advance(59 * time.Second)
	_, ok, _ = cache.Get(ctx, "u1")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = cache.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestCacheCachesEmptyRole(t *testing.T) {
	cache := New(nil)
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "u2", "", time.Minute))
	role, ok, err := cache.Get(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, role)
}

func TestCacheInvalidate(t *testing.T) {
	cache := New(nil)
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "u1", "admin", time.Hour))
	require.NoError(t, cache.Invalidate(ctx, "u1"))

	_, ok, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheIgnoresNonPositiveTTL(t *testing.T) {
	cache := New(nil)
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "u1", "admin", 0))
	_, ok, _ := cache.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestCacheSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := New(clock.Now)
	ctx := t.Context()

	require.NoError(t, cache.Set(ctx, "short", "admin", time.Second))
	require.NoError(t, cache.Set(ctx, "long", "admin", time.Hour))

	clock.Advance(time.Minute)
	removed, err := cache.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, cache.Len())
}
