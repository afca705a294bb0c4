package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "BrentDash/pkg/cache"
)

// SharedCache adapts a pkg/cache Service (Redis or layered) to BytesCache
// so rendered charts are shared between instances.
type SharedCache struct {
	svc     pkgcache.Service
	prefix  string
	timeout time.Duration
}

func NewSharedCache(svc pkgcache.Service, prefix string) *SharedCache {
	return &SharedCache{svc: svc, prefix: prefix, timeout: 2 * time.Second}
}

func (s *SharedCache) GetBytes(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var b []byte
	if err := s.svc.Get(ctx, pkgcache.GenerateKey(s.prefix, key), &b); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *SharedCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.svc.Set(ctx, pkgcache.GenerateKey(s.prefix, key), value, ttl)
}
