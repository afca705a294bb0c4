package view

import (
	"context"
	"testing"

	"BrentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T, api *fakeAPI, opts DashboardOptions) (*Dashboard, *Lifecycle) {
	t.Helper()
	lc := NewLifecycle(context.Background(), nil)
	t.Cleanup(lc.Unmount)
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	return NewDashboard(lc, api, opts), lc
}

func TestDashboardMountComputesStats(t *testing.T) {
	api := &fakeAPI{
		prices: samplePrices(),
		events: models.EventList{Events: []models.Event{{Date: "2014-11-27", Title: "OPEC"}}},
	}
	d, lc := newTestDashboard(t, api, DashboardOptions{})

	d.Mount()
	lc.Wait()

	v := d.View()
	assert.Equal(t, StatusReady, v.StatsStatus)
	assert.Equal(t, 3, v.Stats.TotalPoints)
	assert.Equal(t, "2020-01-02 to 2020-01-06", v.Stats.DateRange)
	assert.True(t, v.Stats.HasAverage)
	assert.InDelta(t, 67.58, v.Stats.AveragePrice, 1e-9)
	assert.Equal(t, 1, v.Stats.ChangePointsCount)
	assert.True(t, v.Filters.ShowEventSelect())

	require.NotNil(t, v.PriceChart)
	require.NotNil(t, v.ChangePoint)
	assert.Nil(t, v.Timeline)
}

func TestDashboardEventsFailureLeavesSelectorEmpty(t *testing.T) {
	api := &fakeAPI{prices: samplePrices(), eventsErr: errUpstream}
	d, lc := newTestDashboard(t, api, DashboardOptions{})

	d.Mount()
	lc.Wait()

	v := d.View()
	assert.False(t, v.Filters.ShowEventSelect())
	assert.Equal(t, StatusReady, v.StatsStatus)
}

func TestDashboardApplyFilterSendsRangeAndKeepsCount(t *testing.T) {
	api := &fakeAPI{}
	api.pricesFn = func(_ context.Context, fs models.FilterState) ([]models.PricePoint, error) {
		if fs.IsZero() {
			return samplePrices(), nil
		}
		return []models.PricePoint{{Date: "2020-01-06", Price: fp(70)}}, nil
	}
	d, lc := newTestDashboard(t, api, DashboardOptions{Deferred: true})
	d.Mount()
	lc.Wait()

	d.Filters.SetStartDate("2020-01-05")
	d.Filters.SetEndDate("2020-01-31")
	d.Filters.Apply()
	lc.Wait()

	filters := api.priceFilters()
	require.NotEmpty(t, filters)
	last := filters[len(filters)-1]
	assert.Equal(t, "2020-01-05", last.Start())
	assert.Equal(t, "2020-01-31", last.End())

	v := d.View()
	assert.Equal(t, 1, v.Stats.TotalPoints)
	assert.Equal(t, "2020-01-06 to 2020-01-06", v.Stats.DateRange)
	assert.InDelta(t, 70, v.Stats.AveragePrice, 1e-9)
	assert.Equal(t, 1, v.Stats.ChangePointsCount)
}

func TestDashboardEmptyFilterResultUpdatesStats(t *testing.T) {
	api := &fakeAPI{}
	api.pricesFn = func(_ context.Context, fs models.FilterState) ([]models.PricePoint, error) {
		if fs.IsZero() {
			return samplePrices(), nil
		}
		return nil, nil
	}
	d, lc := newTestDashboard(t, api, DashboardOptions{Deferred: true})
	d.Mount()
	lc.Wait()

	d.ApplyFilter(models.NewFilterState("1990-01-01", "1990-12-31"))
	lc.Wait()

	v := d.View()
	assert.Equal(t, 0, v.Stats.TotalPoints)
	assert.Equal(t, "N/A to N/A", v.Stats.DateRange)
	assert.False(t, v.Stats.HasAverage)
}

func TestDashboardRestoredFilterReplaysOnMount(t *testing.T) {
	api := &fakeAPI{}
	api.pricesFn = func(_ context.Context, fs models.FilterState) ([]models.PricePoint, error) {
		if fs.IsZero() {
			return samplePrices(), nil
		}
		return samplePrices()[:1], nil
	}
	d, lc := newTestDashboard(t, api, DashboardOptions{Deferred: true})
	d.Restore(State{Applied: models.NewFilterState("2020-01-01", "")})

	d.Mount()
	lc.Wait()

	v := d.View()
	assert.Equal(t, 1, v.Stats.TotalPoints)
	assert.Equal(t, 1, v.Stats.ChangePointsCount)
	assert.Equal(t, "2020-01-01", v.Applied.Start())
}

func TestDashboardQuickRangeDoesNotFetch(t *testing.T) {
	api := &fakeAPI{prices: samplePrices()}
	d, lc := newTestDashboard(t, api, DashboardOptions{Deferred: true})
	d.Mount()
	lc.Wait()
	before := api.count("prices")

	require.NoError(t, d.Filters.ApplyQuickRange("1y"))
	lc.Wait()

	assert.Equal(t, before, api.count("prices"))
	v := d.View()
	assert.Equal(t, "2023-06-15", v.Filters.StartDate)
	assert.Equal(t, "2024-06-15", v.Filters.EndDate)
}

func TestDashboardSelectTab(t *testing.T) {
	api := &fakeAPI{
		prices: samplePrices(),
		events: models.EventList{Events: []models.Event{
			{Date: "2020-03-09", Title: "Price war"},
			{Date: "2008-07-11", Title: "All-time high"},
		}},
	}
	d, lc := newTestDashboard(t, api, DashboardOptions{})
	d.Mount()
	lc.Wait()

	d.SelectTab(TabEvents)
	lc.Wait()
	v := d.View()
	assert.Equal(t, TabEvents, v.Tab)
	assert.Nil(t, v.PriceChart)
	assert.Nil(t, v.ChangePoint)
	require.NotNil(t, v.Timeline)
	require.Len(t, v.Timeline.Entries, 2)
	assert.Equal(t, "2008-07-11", v.Timeline.Entries[0].Date)

	d.SelectTab(TabVolatility)
	lc.Wait()
	v = d.View()
	require.NotNil(t, v.PriceChart)
	assert.Equal(t, ModeLine, v.PriceChart.Mode)
	assert.False(t, v.ChartProps.ShowVolatility)
	assert.Zero(t, api.count("volatility"))
}

func TestDashboardVolatilityTabSwitch(t *testing.T) {
	api := &fakeAPI{prices: samplePrices()}
	d, lc := newTestDashboard(t, api, DashboardOptions{VolatilityTabShowsVolatility: true})
	d.Restore(State{Tab: TabVolatility})
	d.Mount()
	lc.Wait()

	v := d.View()
	require.NotNil(t, v.PriceChart)
	assert.Equal(t, ModeArea, v.PriceChart.Mode)
	assert.Equal(t, 1, api.count("volatility"))
}

func TestDashboardSelectEventMarksPriceChart(t *testing.T) {
	api := &fakeAPI{prices: samplePrices()}
	d, lc := newTestDashboard(t, api, DashboardOptions{})
	d.Mount()
	lc.Wait()

	d.Filters.SelectEvent("2020-01-03")
	lc.Wait()

	v := d.View()
	require.NotNil(t, v.Event)
	assert.Equal(t, "Custom Date", v.Event.Title)
	require.NotNil(t, v.PriceChart)
	assert.Equal(t, "2020-01-03", v.PriceChart.Props.ChangePoint)
	assert.Equal(t, "2020-01-03", v.PriceChart.Props.HighlightedDate)
	assert.Len(t, v.PriceChart.Markers, 1)

	d.Filters.ClearEvent()
	v = d.View()
	assert.Nil(t, v.Event)
	assert.Empty(t, v.PriceChart.Markers)
}

func TestDashboardDeferredMountsNoChildren(t *testing.T) {
	api := &fakeAPI{prices: samplePrices()}
	d, lc := newTestDashboard(t, api, DashboardOptions{Deferred: true})
	d.Mount()
	lc.Wait()

	v := d.View()
	assert.True(t, v.Deferred)
	assert.Nil(t, v.PriceChart)
	assert.Nil(t, v.ChangePoint)
	assert.Zero(t, api.count("change-points"))
	assert.Equal(t, 1, api.count("prices"))
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabPrices, tab)

	tab, err = ParseTab("events")
	require.NoError(t, err)
	assert.Equal(t, TabEvents, tab)

	_, err = ParseTab("signals")
	assert.Error(t, err)
}

func TestShellView(t *testing.T) {
	assert.Equal(t, ShellView{Theme: models.ThemeDark, ThemeClass: "dark-theme", ToggleLabel: "Dark Mode: On"}, NewShellView(models.ThemeDark))
	assert.Equal(t, "Dark Mode: Off", NewShellView(models.ThemeLight).ToggleLabel)
}
