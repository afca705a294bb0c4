package view

import (
	"fmt"
	"sync"
	"time"

	"BrentDash/internal/domain/models"
	"BrentDash/pkg/util"
)

// DefaultRangeYears is the span selected on mount and on reset.
const DefaultRangeYears = 5

// QuickRange is a preset date span.
type QuickRange struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Years int    `json:"years"` // 0 means the full range
}

var quickRanges = []QuickRange{
	{ID: "1y", Label: "Last 1 Year", Years: 1},
	{ID: "3y", Label: "Last 3 Years", Years: 3},
	{ID: "5y", Label: "Last 5 Years", Years: 5},
	{ID: "all", Label: "Full Range"},
}

// QuickRanges lists the presets in display order.
func QuickRanges() []QuickRange {
	return append([]QuickRange(nil), quickRanges...)
}

// FiltersView is the filter panel.
type FiltersView struct {
	StartDate   string
	EndDate     string
	PanelOpen   bool
	ToggleLabel string
	QuickRanges []QuickRange
	Events      []models.Event
	Selected    *models.Event
}

// ShowEventSelect reports whether the event selector is rendered.
func (v FiltersView) ShowEventSelect() bool {
	return len(v.Events) > 0
}

// Filters holds the draft date range and the highlighted event. It never
// touches the network; the parent learns about changes through
// OnFilterChange and OnEventSelect.
type Filters struct {
	now func() time.Time

	OnFilterChange func(models.FilterState)
	OnEventSelect  func(*models.Event)

	mu        sync.Mutex
	startDate string
	endDate   string
	selected  *models.Event
	panelOpen bool
	events    []models.Event
}

// NewFilters creates the panel with the default range. now may be nil.
func NewFilters(now func() time.Time) *Filters {
	if now == nil {
		now = time.Now
	}
	f := &Filters{now: now}
	f.startDate, f.endDate = util.DateRange(now(), DefaultRangeYears)
	return f
}

// SetEvents supplies the events offered in the selector.
func (f *Filters) SetEvents(events []models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append([]models.Event(nil), events...)
}

// SetStartDate edits the draft start. Nothing is applied.
func (f *Filters) SetStartDate(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startDate = s
}

// SetEndDate edits the draft end. Nothing is applied.
func (f *Filters) SetEndDate(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endDate = s
}

// ApplyQuickRange sets the draft range from a preset without applying it.
func (f *Filters) ApplyQuickRange(id string) error {
	for _, r := range quickRanges {
		if r.ID != id {
			continue
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Years == 0 {
			f.startDate, f.endDate = "", ""
		} else {
			f.startDate, f.endDate = util.DateRange(f.now(), r.Years)
		}
		return nil
	}
	return fmt.Errorf("unknown quick range %q", id)
}

// Apply pushes the draft range to the parent. Empty bounds become nil.
func (f *Filters) Apply() {
	f.mu.Lock()
	fs := models.NewFilterState(f.startDate, f.endDate)
	cb := f.OnFilterChange
	f.mu.Unlock()

	if cb != nil {
		cb(fs)
	}
}

// SelectEvent highlights the listed event at date, or a custom date.
func (f *Filters) SelectEvent(date string) {
	f.mu.Lock()
	ev, ok := models.EventList{Events: f.events}.Find(date)
	if !ok {
		ev = models.Event{Date: date, Title: models.CustomEventTitle}
	}
	selected := models.Event{Date: ev.Date, Title: ev.Title}
	f.selected = &selected
	cb := f.OnEventSelect
	f.mu.Unlock()

	if cb != nil {
		out := selected
		cb(&out)
	}
}

// ClearEvent drops the highlighted event and leaves the range alone.
func (f *Filters) ClearEvent() {
	f.mu.Lock()
	f.selected = nil
	cb := f.OnEventSelect
	f.mu.Unlock()

	if cb != nil {
		cb(nil)
	}
}

// Reset restores the default range, clears the event and tells the parent
// that no filter is applied.
func (f *Filters) Reset() {
	f.mu.Lock()
	f.startDate, f.endDate = util.DateRange(f.now(), DefaultRangeYears)
	f.selected = nil
	onFilter, onEvent := f.OnFilterChange, f.OnEventSelect
	f.mu.Unlock()

	if onFilter != nil {
		onFilter(models.FilterState{})
	}
	if onEvent != nil {
		onEvent(nil)
	}
}

// TogglePanel shows or hides the panel.
func (f *Filters) TogglePanel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panelOpen = !f.panelOpen
}

// Restore rebuilds state carried over from a previous view without firing
// callbacks. Nil drafts keep the current values.
func (f *Filters) Restore(start, end *string, selected *models.Event, panelOpen bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if start != nil {
		f.startDate = *start
	}
	if end != nil {
		f.endDate = *end
	}
	if selected != nil {
		ev := *selected
		f.selected = &ev
	} else {
		f.selected = nil
	}
	f.panelOpen = panelOpen
}

// View snapshots the panel.
func (f *Filters) View() FiltersView {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := FiltersView{
		StartDate:   f.startDate,
		EndDate:     f.endDate,
		PanelOpen:   f.panelOpen,
		ToggleLabel: "Show Filters",
		QuickRanges: QuickRanges(),
		Events:      append([]models.Event(nil), f.events...),
	}
	if f.panelOpen {
		v.ToggleLabel = "Hide Filters"
	}
	if f.selected != nil {
		ev := *f.selected
		v.Selected = &ev
	}
	return v
}
