package view

import (
	"context"
	"errors"
	"sync"

	"BrentDash/internal/domain/models"
)

var errUpstream = errors.New("upstream unavailable")

// fakeAPI answers from canned data and records every call.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	filters []models.FilterState

	prices       []models.PricePoint
	pricesErr    error
	pricesFn     func(ctx context.Context, fs models.FilterState) ([]models.PricePoint, error)
	volatility   []models.VolatilityPoint
	volErr       error
	changePoints models.ChangePointResult
	cpErr        error
	events       models.EventList
	eventsErr    error
	impacts      []models.EventImpact
	impactsErr   error
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) priceFilters() []models.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FilterState(nil), f.filters...)
}

func (f *fakeAPI) Prices(ctx context.Context, fs models.FilterState) ([]models.PricePoint, error) {
	f.record("prices")
	f.mu.Lock()
	f.filters = append(f.filters, fs)
	fn := f.pricesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, fs)
	}
	return f.prices, f.pricesErr
}

func (f *fakeAPI) Volatility(_ context.Context, _ int) ([]models.VolatilityPoint, error) {
	f.record("volatility")
	return f.volatility, f.volErr
}

func (f *fakeAPI) ChangePoints(_ context.Context) (models.ChangePointResult, error) {
	f.record("change-points")
	return f.changePoints, f.cpErr
}

func (f *fakeAPI) Events(_ context.Context) (models.EventList, error) {
	f.record("events")
	return f.events, f.eventsErr
}

func (f *fakeAPI) EventImpacts(_ context.Context) ([]models.EventImpact, error) {
	f.record("impacts")
	return f.impacts, f.impactsErr
}

func fp(v float64) *float64 { return &v }

func samplePrices() []models.PricePoint {
	return []models.PricePoint{
		{Date: "2020-01-02", Price: fp(66.25)},
		{Date: "2020-01-03", Price: nil},
		{Date: "2020-01-06", Price: fp(68.91)},
	}
}
