package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/domain/repository"
	pkgcache "BrentDash/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileThemeStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "theme.json")
	store := NewFileThemeStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)

	require.NoError(t, store.Save(ctx, models.ThemeDark))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dashboard-theme":"dark"}`, string(raw))

	// a fresh store sees the persisted value, like a reload would
	got, err := NewFileThemeStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got)
}

func TestFileThemeStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileThemeStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrThemeNotFound)
}

func TestFileThemeStoreReturnsRawValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dashboard-theme":"purple"}`), 0o644))

	got, err := NewFileThemeStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "purple", got)
}

func TestCacheThemeStore(t *testing.T) {
	mem := pkgcache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	store := NewCacheThemeStore(mem)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrThemeNotFound)

	require.NoError(t, store.Save(ctx, models.ThemeLight))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}
