package repository

import (
	"context"
	"errors"
	"fmt"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/domain/repository"
	pkgcache "BrentDash/pkg/cache"
)

// CacheThemeStore keeps the theme under the dashboard-theme key of a
// pkg/cache Service, typically Redis, so replicas share one setting.
type CacheThemeStore struct {
	cache pkgcache.Service
}

// NewCacheThemeStore creates a cache-backed theme store.
func NewCacheThemeStore(cache pkgcache.Service) repository.ThemeStore {
	return &CacheThemeStore{cache: cache}
}

func (s *CacheThemeStore) Load(ctx context.Context) (string, error) {
	var v string
	if err := s.cache.Get(ctx, models.ThemeStorageKey, &v); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return "", repository.ErrThemeNotFound
		}
		return "", fmt.Errorf("load theme: %w", err)
	}
	return v, nil
}

// Save stores the theme without expiry.
func (s *CacheThemeStore) Save(ctx context.Context, theme models.Theme) error {
	if err := s.cache.Set(ctx, models.ThemeStorageKey, string(theme), 0); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
