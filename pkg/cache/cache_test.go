package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Date  string   `json:"date"`
	Price *float64 `json:"price"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	p := 82.5
	require.NoError(t, mc.Set(ctx, "k", []sample{{Date: "2024-01-02", Price: &p}, {Date: "2024-01-03"}}, time.Minute))

	got, err := GetTyped[[]sample](ctx, mc, "k")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 82.5, *got[0].Price)
	assert.Nil(t, got[1].Price)

	var raw []byte
	require.NoError(t, mc.Set(ctx, "b", []byte("svg"), 0))
	require.NoError(t, mc.Get(ctx, "b", &raw))
	assert.Equal(t, "svg", string(raw))
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "k", "v", time.Second))
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	var s string
	assert.True(t, errors.Is(mc.Get(ctx, "k", &s), ErrCacheMiss))
	ok, _ = mc.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "a", "1", time.Hour))
	now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "b", "2", time.Hour))
	now = now.Add(time.Second)

	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "c", "3", time.Hour))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &s), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &s))
	assert.Equal(t, "1", s)
}

func TestLayeredCacheReadsThroughToL2(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2, WithLayeredMemoryTTL(time.Minute))
	defer lc.Close()

	require.NoError(t, l2.Set(ctx, "theme", "dark", 0))

	var s string
	require.NoError(t, lc.Get(ctx, "theme", &s))
	assert.Equal(t, "dark", s)

	// served from L1 once L2 forgets it
	require.NoError(t, l2.Delete(ctx, "theme"))
	require.NoError(t, lc.Get(ctx, "theme", &s))
	assert.Equal(t, "dark", s)

	require.NoError(t, lc.Delete(ctx, "theme"))
	assert.ErrorIs(t, lc.Get(ctx, "theme", &s), ErrCacheMiss)
}

func TestLayeredCacheWritesBothLayers(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2)
	defer lc.Close()

	require.NoError(t, lc.Set(ctx, "k", map[string]int{"n": 3}, time.Minute))

	ok, err := l2.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := GetTyped[map[string]int](ctx, lc, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, got["n"])
}

func TestGenerateKeyWithParams(t *testing.T) {
	from := "2020-01-01"
	empty := ""
	var none *string

	assert.Equal(t, "prices:2020-01-01:-", GenerateKeyWithParams("prices", &from, none))
	assert.Equal(t, "prices:-:-", GenerateKeyWithParams("prices", &empty, nil))
	assert.Equal(t, "vol:30", GenerateKeyWithParams("vol", 30))
	assert.Equal(t, "chart:abc", GenerateKey("chart", "abc"))
	assert.Len(t, HashKey("x"), 32)
}

func TestRedisOptions(t *testing.T) {
	cfg := &RedisConfig{}
	for _, opt := range []RedisOption{
		WithRedisHost("redis"),
		WithRedisPort(6380),
		WithRedisPool(32, 4, 5*time.Second),
		WithRedisPrefix("dash"),
	} {
		opt(cfg)
	}

	assert.Equal(t, "redis", cfg.Host)
	assert.Equal(t, 6380, cfg.Port)
	assert.Equal(t, 32, cfg.PoolSize)
	assert.Equal(t, 4, cfg.MinIdleConns)
	assert.Equal(t, 5*time.Second, cfg.PoolTimeout)
	assert.Equal(t, "dash", cfg.Prefix)
}
