package analytics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"BrentDash/internal/domain/models"
	domrepo "BrentDash/internal/domain/repository"
	domsvc "BrentDash/internal/domain/service"
	pkgcache "BrentDash/pkg/cache"
	applogger "BrentDash/pkg/logger"
)

const cacheName = "analytics"

// CachedAnalytics memoizes successful upstream responses for a TTL. The
// page and its charts request the same series several times per view;
// this absorbs the duplicates. Failures are never cached.
type CachedAnalytics struct {
	next    domsvc.AnalyticsAPI
	cache   pkgcache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewCachedAnalytics(next domsvc.AnalyticsAPI, cache pkgcache.Service, ttl time.Duration, metrics domrepo.Metrics, l *applogger.Logger) *CachedAnalytics {
	if l == nil {
		l = applogger.NewNop()
	}
	return &CachedAnalytics{next: next, cache: cache, ttl: ttl, metrics: metrics, logger: l}
}

func (c *CachedAnalytics) Prices(ctx context.Context, filter models.FilterState) ([]models.PricePoint, error) {
	key := pkgcache.GenerateKeyWithParams("prices", filter.StartDate, filter.EndDate)
	return cached(ctx, c, key, func(ctx context.Context) ([]models.PricePoint, error) {
		return c.next.Prices(ctx, filter)
	})
}

func (c *CachedAnalytics) Volatility(ctx context.Context, window int) ([]models.VolatilityPoint, error) {
	key := pkgcache.GenerateKey("volatility", strconv.Itoa(window))
	return cached(ctx, c, key, func(ctx context.Context) ([]models.VolatilityPoint, error) {
		return c.next.Volatility(ctx, window)
	})
}

func (c *CachedAnalytics) ChangePoints(ctx context.Context) (models.ChangePointResult, error) {
	// stored as the raw item list so the sum type survives the round trip
	items, err := cached(ctx, c, "change-points", func(ctx context.Context) ([]models.ChangePoint, error) {
		res, err := c.next.ChangePoints(ctx)
		if err != nil {
			return nil, err
		}
		return append([]models.ChangePoint{}, res.Items...), nil
	})
	if err != nil {
		return models.ChangePointResult{}, err
	}
	switch len(items) {
	case 0:
		return models.ChangePointResult{Kind: models.ChangePointEmpty}, nil
	case 1:
		return models.ChangePointResult{Kind: models.ChangePointSingle, Items: items}, nil
	default:
		return models.ChangePointResult{Kind: models.ChangePointList, Items: items}, nil
	}
}

func (c *CachedAnalytics) Events(ctx context.Context) (models.EventList, error) {
	events, err := cached(ctx, c, "events", func(ctx context.Context) ([]models.Event, error) {
		list, err := c.next.Events(ctx)
		if err != nil {
			return nil, err
		}
		return append([]models.Event{}, list.Events...), nil
	})
	if err != nil {
		return models.EventList{}, err
	}
	return models.EventList{Events: events}, nil
}

func (c *CachedAnalytics) EventImpacts(ctx context.Context) ([]models.EventImpact, error) {
	return cached(ctx, c, "event-impacts", func(ctx context.Context) ([]models.EventImpact, error) {
		return c.next.EventImpacts(ctx)
	})
}

func cached[T any](ctx context.Context, c *CachedAnalytics, key string, load func(context.Context) (T, error)) (T, error) {
	key = pkgcache.GenerateKey(cacheName, key)

	var hit T
	err := c.cache.Get(ctx, key, &hit)
	switch {
	case err == nil:
		c.record(true)
		return hit, nil
	case !errors.Is(err, pkgcache.ErrCacheMiss):
		c.logger.Warn("analytics cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	c.record(false)

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := c.cache.Set(ctx, key, v, c.ttl); err != nil {
		c.logger.Warn("analytics cache write failed", applogger.String("key", key), applogger.Error(err))
	}
	return v, nil
}

func (c *CachedAnalytics) record(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCache(cacheName, hit)
	}
}

var _ domsvc.AnalyticsAPI = (*CachedAnalytics)(nil)
