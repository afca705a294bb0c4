package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"BrentDash/internal/domain/models"
	pkgcache "BrentDash/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAPI struct {
	mu     sync.Mutex
	calls  map[string]int
	failOn string
}

func (a *countingAPI) hit(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calls == nil {
		a.calls = map[string]int{}
	}
	a.calls[name]++
	if name == a.failOn {
		return errors.New("upstream down")
	}
	return nil
}

func (a *countingAPI) count(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[name]
}

func (a *countingAPI) Prices(_ context.Context, f models.FilterState) ([]models.PricePoint, error) {
	if err := a.hit("prices"); err != nil {
		return nil, err
	}
	p := 70.0
	return []models.PricePoint{{Date: f.Start() + "x", Price: &p}}, nil
}

func (a *countingAPI) Volatility(context.Context, int) ([]models.VolatilityPoint, error) {
	return nil, a.hit("volatility")
}

func (a *countingAPI) ChangePoints(context.Context) (models.ChangePointResult, error) {
	if err := a.hit("change-points"); err != nil {
		return models.ChangePointResult{}, err
	}
	return models.ChangePointResult{Kind: models.ChangePointSingle, Items: []models.ChangePoint{{TauDate: "2014-06-01"}}}, nil
}

func (a *countingAPI) Events(context.Context) (models.EventList, error) {
	if err := a.hit("events"); err != nil {
		return models.EventList{}, err
	}
	return models.EventList{Events: []models.Event{{Date: "2020-04-01", Title: "COVID-19 Impact"}}}, nil
}

func (a *countingAPI) EventImpacts(context.Context) ([]models.EventImpact, error) {
	return nil, a.hit("impacts")
}

func newCached(t *testing.T, next *countingAPI) (*CachedAnalytics, *recordingMetrics) {
	t.Helper()
	mem := pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(32))
	t.Cleanup(func() { _ = mem.Close() })
	m := &recordingMetrics{}
	return NewCachedAnalytics(next, mem, time.Minute, m, nil), m
}

func TestCachedPricesKeyedByFilter(t *testing.T) {
	next := &countingAPI{}
	c, m := newCached(t, next)
	ctx := context.Background()

	a, err := c.Prices(ctx, models.NewFilterState("2020-01-01", ""))
	require.NoError(t, err)
	b, err := c.Prices(ctx, models.NewFilterState("2020-01-01", ""))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, next.count("prices"))

	_, err = c.Prices(ctx, models.FilterState{})
	require.NoError(t, err)
	assert.Equal(t, 2, next.count("prices"))

	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 2, m.misses)
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &countingAPI{failOn: "events"}
	c, _ := newCached(t, next)
	ctx := context.Background()

	_, err := c.Events(ctx)
	require.Error(t, err)
	_, err = c.Events(ctx)
	require.Error(t, err)
	assert.Equal(t, 2, next.count("events"))
}

func TestCachedChangePointsKeepsPrimary(t *testing.T) {
	next := &countingAPI{}
	c, _ := newCached(t, next)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := c.ChangePoints(ctx)
		require.NoError(t, err)
		cp, ok := res.Primary()
		require.True(t, ok)
		assert.Equal(t, "2014-06-01", cp.TauDate)
	}
	assert.Equal(t, 1, next.count("change-points"))
}
