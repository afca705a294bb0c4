package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"BrentDash/internal/domain/models"
	domsvc "BrentDash/internal/domain/service"
	"BrentDash/internal/usecase"
	applogger "BrentDash/pkg/logger"
)

// Tab selects which children the dashboard mounts.
type Tab string

const (
	TabPrices     Tab = "prices"
	TabVolatility Tab = "volatility"
	TabEvents     Tab = "events"
)

// ParseTab accepts the three tab names; empty means prices.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "":
		return TabPrices, nil
	case TabPrices, TabVolatility, TabEvents:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

const (
	slotStats           = "dashboard/stats"
	slotEvents          = "dashboard/events"
	slotPricesChart     = "prices/price-chart"
	slotChangePoint     = "prices/change-point"
	slotVolatilityChart = "volatility/price-chart"
	slotTimeline        = "events/timeline"
)

// DashboardOptions tune the composition.
type DashboardOptions struct {
	VolatilityWindow int
	// VolatilityTabShowsVolatility draws the volatility area on the
	// volatility tab. Off keeps the plain price line there.
	VolatilityTabShowsVolatility bool
	// Deferred leaves the tab children unmounted; the page loads them as
	// separate fragments.
	Deferred bool
	Now      func() time.Time
}

// State is what a page carries between requests.
type State struct {
	Tab        Tab
	Applied    models.FilterState
	Event      *models.Event
	DraftStart *string
	DraftEnd   *string
	PanelOpen  bool
}

// DashboardView is the whole page below the shell.
type DashboardView struct {
	Tab         Tab
	StatsStatus Status
	Stats       models.SummaryStats
	Applied     models.FilterState
	Filters     FiltersView
	Event       *models.Event
	ChartProps  PriceChartProps
	Deferred    bool
	PriceChart  *PriceChartView
	ChangePoint *ChangePointView
	Timeline    *EventTimelineView
}

// Dashboard composes the header stats, the filters and the tab children.
type Dashboard struct {
	lc     *Lifecycle
	api    domsvc.AnalyticsAPI
	logger *applogger.Logger
	opts   DashboardOptions

	Filters *Filters

	mu          sync.Mutex
	tab         Tab
	applied     models.FilterState
	event       *models.Event
	stats       models.SummaryStats
	statsStatus Status
	mounted     bool

	priceChart  *PriceChart
	changePoint *ChangePointChart
	timeline    *EventTimeline
	childSlots  []string
}

func NewDashboard(lc *Lifecycle, api domsvc.AnalyticsAPI, opts DashboardOptions) *Dashboard {
	if opts.VolatilityWindow <= 0 {
		opts.VolatilityWindow = DefaultVolatilityWindow
	}
	d := &Dashboard{
		lc:          lc,
		api:         api,
		logger:      lc.Logger().With(applogger.String("component", "dashboard")),
		opts:        opts,
		Filters:     NewFilters(opts.Now),
		tab:         TabPrices,
		statsStatus: StatusLoading,
	}
	d.Filters.OnFilterChange = d.ApplyFilter
	d.Filters.OnEventSelect = d.SelectEvent
	return d
}

// Restore loads carried-over page state. It must run before Mount and
// issues nothing.
func (d *Dashboard) Restore(st State) {
	d.mu.Lock()
	if st.Tab != "" {
		d.tab = st.Tab
	}
	d.applied = st.Applied
	d.event = copyEvent(st.Event)
	d.mu.Unlock()

	d.Filters.Restore(st.DraftStart, st.DraftEnd, st.Event, st.PanelOpen)
}

// Mount loads the unfiltered stats and the event list and mounts the
// children of the current tab. A restored filter is applied on top of the
// initial stats the way a later ApplyFilter would.
func (d *Dashboard) Mount() {
	d.mu.Lock()
	d.mounted = true
	applied := d.applied
	d.mu.Unlock()

	Issue(d.lc, slotStats, func(ctx context.Context) (models.SummaryStats, error) {
		points, err := d.api.Prices(ctx, models.FilterState{})
		if err != nil {
			return models.SummaryStats{}, err
		}
		st := usecase.ComputeStats(points)
		if applied.IsZero() {
			return st, nil
		}
		filtered, err := d.api.Prices(ctx, applied)
		if err != nil {
			d.logger.Error("error fetching filtered data", applogger.Error(err))
			return st, nil
		}
		return usecase.RefreshStats(st, filtered), nil
	}, func(st models.SummaryStats, err error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.logger.Error("error fetching initial data", applogger.Error(err))
			d.statsStatus = StatusError
			return
		}
		d.stats = st
		d.statsStatus = StatusReady
	})

	Issue(d.lc, slotEvents, func(ctx context.Context) (models.EventList, error) {
		return d.api.Events(ctx)
	}, func(list models.EventList, err error) {
		if err != nil {
			d.logger.Warn("events unavailable", applogger.Error(err))
			d.Filters.SetEvents(nil)
			return
		}
		d.Filters.SetEvents(list.Events)
	})

	d.mountChildren()
}

// ApplyFilter refreshes total, date range and average from the filtered
// series. An in-flight stats load is superseded.
func (d *Dashboard) ApplyFilter(fs models.FilterState) {
	d.mu.Lock()
	d.applied = fs
	d.statsStatus = StatusLoading
	d.mu.Unlock()

	Issue(d.lc, slotStats, func(ctx context.Context) ([]models.PricePoint, error) {
		return d.api.Prices(ctx, fs)
	}, func(points []models.PricePoint, err error) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.logger.Error("error fetching filtered data", applogger.Error(err))
			d.statsStatus = StatusReady
			return
		}
		d.stats = usecase.RefreshStats(d.stats, points)
		d.statsStatus = StatusReady
	})
}

// SelectTab swaps the mounted children. Tasks of the previous tab are
// cancelled.
func (d *Dashboard) SelectTab(tab Tab) {
	d.mu.Lock()
	if tab == d.tab {
		d.mu.Unlock()
		return
	}
	d.tab = tab
	d.mu.Unlock()

	d.mountChildren()
}

// SelectEvent highlights ev on the charts; nil clears it.
func (d *Dashboard) SelectEvent(ev *models.Event) {
	d.mu.Lock()
	d.event = copyEvent(ev)
	chart := d.priceChart
	props := d.chartPropsLocked()
	d.mu.Unlock()

	if chart != nil {
		chart.SetProps(props)
	}
}

// ChartProps returns the props the current tab's price chart is mounted
// with.
func (d *Dashboard) ChartProps() PriceChartProps {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chartPropsLocked()
}

func (d *Dashboard) chartPropsLocked() PriceChartProps {
	var date string
	if d.event != nil {
		date = d.event.Date
	}
	switch d.tab {
	case TabPrices:
		return PriceChartProps{ChangePoint: date, HighlightedDate: date}
	case TabVolatility:
		return PriceChartProps{HighlightedDate: date, ShowVolatility: d.opts.VolatilityTabShowsVolatility}
	default:
		return PriceChartProps{}
	}
}

func (d *Dashboard) mountChildren() {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		return
	}
	old := d.childSlots
	d.priceChart, d.changePoint, d.timeline, d.childSlots = nil, nil, nil, nil
	tab := d.tab
	props := d.chartPropsLocked()

	var (
		chart    *PriceChart
		cp       *ChangePointChart
		timeline *EventTimeline
	)
	if !d.opts.Deferred {
		switch tab {
		case TabPrices:
			chart = NewPriceChart(d.lc, d.api, slotPricesChart, d.opts.VolatilityWindow)
			cp = NewChangePointChart(d.lc, d.api, slotChangePoint, d.opts.VolatilityWindow)
			d.childSlots = []string{slotPricesChart, slotChangePoint, slotChangePoint + "/price-chart"}
		case TabVolatility:
			chart = NewPriceChart(d.lc, d.api, slotVolatilityChart, d.opts.VolatilityWindow)
			d.childSlots = []string{slotVolatilityChart}
		case TabEvents:
			timeline = NewEventTimeline(d.lc, d.api, slotTimeline)
			d.childSlots = []string{slotTimeline}
		}
	}
	d.priceChart, d.changePoint, d.timeline = chart, cp, timeline
	d.mu.Unlock()

	d.lc.Cancel(old...)
	if chart != nil {
		chart.Mount(props)
	}
	if cp != nil {
		cp.Mount()
	}
	if timeline != nil {
		timeline.Mount()
	}
}

// View snapshots the dashboard and its children.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	v := DashboardView{
		Tab:         d.tab,
		StatsStatus: d.statsStatus,
		Stats:       d.stats,
		Applied:     d.applied,
		Event:       copyEvent(d.event),
		ChartProps:  d.chartPropsLocked(),
		Deferred:    d.opts.Deferred,
	}
	chart, cp, timeline := d.priceChart, d.changePoint, d.timeline
	d.mu.Unlock()

	v.Filters = d.Filters.View()
	if chart != nil {
		cv := chart.View()
		v.PriceChart = &cv
	}
	if cp != nil {
		cv := cp.View()
		v.ChangePoint = &cv
	}
	if timeline != nil {
		tv := timeline.View()
		v.Timeline = &tv
	}
	return v
}

func copyEvent(ev *models.Event) *models.Event {
	if ev == nil {
		return nil
	}
	out := *ev
	return &out
}
