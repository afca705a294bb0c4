package view

import (
	"context"
	"sort"
	"sync"

	"BrentDash/internal/domain/models"
	domsvc "BrentDash/internal/domain/service"
	applogger "BrentDash/pkg/logger"
)

// TimelineEntry is one event row, with its impact when the backend has one.
type TimelineEntry struct {
	models.Event
	Impact      *models.EventImpact `json:"impact,omitempty"`
	Change      string              `json:"change,omitempty"`
	ChangeClass string              `json:"change_class,omitempty"`
}

// EventTimelineView is the events tab.
type EventTimelineView struct {
	Status  Status
	Entries []TimelineEntry
}

type timelineData struct {
	events  []models.Event
	impacts []models.EventImpact
}

// EventTimeline lists market events in date order. Both of its sources are
// secondary: a failure leaves the list empty.
type EventTimeline struct {
	lc     *Lifecycle
	api    domsvc.AnalyticsAPI
	logger *applogger.Logger
	key    string

	mu      sync.Mutex
	status  Status
	entries []TimelineEntry
}

func NewEventTimeline(lc *Lifecycle, api domsvc.AnalyticsAPI, key string) *EventTimeline {
	return &EventTimeline{
		lc:     lc,
		api:    api,
		logger: lc.Logger().With(applogger.String("component", "event_timeline")),
		key:    key,
		status: StatusLoading,
	}
}

// Mount fetches /events and /events/impact.
func (t *EventTimeline) Mount() {
	Issue(t.lc, t.key, func(ctx context.Context) (timelineData, error) {
		var d timelineData
		events, err := t.api.Events(ctx)
		if err != nil {
			t.logger.Warn("events unavailable", applogger.Error(err))
			return d, nil
		}
		d.events = events.Events

		impacts, err := t.api.EventImpacts(ctx)
		if err != nil {
			t.logger.Warn("event impacts unavailable", applogger.Error(err))
		} else {
			d.impacts = impacts
		}
		return d, nil
	}, t.apply)
}

func (t *EventTimeline) apply(d timelineData, _ error) {
	byDate := make(map[string]models.EventImpact, len(d.impacts))
	for _, im := range d.impacts {
		byDate[im.Date] = im
	}

	entries := make([]TimelineEntry, 0, len(d.events))
	for _, ev := range d.events {
		e := TimelineEntry{Event: ev}
		if im, ok := byDate[ev.Date]; ok {
			e.Impact = &im
			e.Change, e.ChangeClass = formatImpact(im.PriceChangePercent)
		}
		entries = append(entries, e)
	}
	// ISO dates sort lexically
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusReady
	t.entries = entries
}

// View snapshots the timeline.
func (t *EventTimeline) View() EventTimelineView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return EventTimelineView{
		Status:  t.status,
		Entries: append([]TimelineEntry(nil), t.entries...),
	}
}

func formatImpact(pct *float64) (string, string) {
	if pct == nil {
		return notAvailable, ""
	}
	return FormatSignedPercent(*pct)
}
