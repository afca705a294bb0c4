package cache

import (
	"context"
	"testing"
	"time"

	pkgcache "BrentDash/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(4)
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetBytes("k", []byte("<svg/>"), time.Minute))
	v, ok, err := c.GetBytes("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<svg/>", string(v))

	now = now.Add(2 * time.Minute)
	_, ok, err = c.GetBytes("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestTTLCacheCopiesValue(t *testing.T) {
	c := NewTTLCache(1)
	buf := []byte("abc")
	require.NoError(t, c.SetBytes("k", buf, 0))
	buf[0] = 'x'

	v, ok, _ := c.GetBytes("k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(v))
}

func TestTTLCacheEvictsSoonestExpiry(t *testing.T) {
	c := NewTTLCache(2)
	require.NoError(t, c.SetBytes("long", []byte("1"), time.Hour))
	require.NoError(t, c.SetBytes("short", []byte("2"), time.Minute))
	require.NoError(t, c.SetBytes("new", []byte("3"), time.Hour))

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.GetBytes("short")
	assert.False(t, ok)
	_, ok, _ = c.GetBytes("long")
	assert.True(t, ok)
}

func TestSharedCache(t *testing.T) {
	svc := pkgcache.NewMemoryCache()
	defer svc.Close()
	c := NewSharedCache(svc, "chart")

	_, ok, err := c.GetBytes("abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetBytes("abc", []byte("<svg/>"), time.Minute))
	v, ok, err := c.GetBytes("abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<svg/>", string(v))

	var raw []byte
	require.NoError(t, svc.Get(context.Background(), "chart:abc", &raw))
	assert.Equal(t, "<svg/>", string(raw))
}
