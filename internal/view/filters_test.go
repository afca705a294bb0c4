package view

import (
	"testing"
	"time"

	"BrentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}

type filterRecorder struct {
	filters []models.FilterState
	events  []*models.Event
}

func newRecordedFilters() (*Filters, *filterRecorder) {
	f := NewFilters(fixedNow)
	rec := &filterRecorder{}
	f.OnFilterChange = func(fs models.FilterState) { rec.filters = append(rec.filters, fs) }
	f.OnEventSelect = func(ev *models.Event) { rec.events = append(rec.events, ev) }
	return f, rec
}

func TestFiltersDefaultToLastFiveYears(t *testing.T) {
	f, _ := newRecordedFilters()
	v := f.View()

	assert.Equal(t, "2019-06-15", v.StartDate)
	assert.Equal(t, "2024-06-15", v.EndDate)
	assert.False(t, v.PanelOpen)
	assert.Equal(t, "Show Filters", v.ToggleLabel)
	assert.False(t, v.ShowEventSelect())
}

func TestFiltersQuickRangeSetsDraftOnly(t *testing.T) {
	f, rec := newRecordedFilters()

	require.NoError(t, f.ApplyQuickRange("1y"))
	v := f.View()
	assert.Equal(t, "2023-06-15", v.StartDate)
	assert.Equal(t, "2024-06-15", v.EndDate)

	require.NoError(t, f.ApplyQuickRange("all"))
	v = f.View()
	assert.Empty(t, v.StartDate)
	assert.Empty(t, v.EndDate)

	assert.Error(t, f.ApplyQuickRange("10y"))
	assert.Empty(t, rec.filters)
	assert.Empty(t, rec.events)
}

func TestFiltersApplyEmitsNilForEmptyBounds(t *testing.T) {
	f, rec := newRecordedFilters()

	f.SetStartDate("2020-01-01")
	f.SetEndDate("")
	assert.Empty(t, rec.filters)

	f.Apply()
	require.Len(t, rec.filters, 1)
	require.NotNil(t, rec.filters[0].StartDate)
	assert.Equal(t, "2020-01-01", *rec.filters[0].StartDate)
	assert.Nil(t, rec.filters[0].EndDate)
}

func TestFiltersSelectEvent(t *testing.T) {
	f, rec := newRecordedFilters()
	f.SetEvents([]models.Event{{Date: "2014-11-27", Title: "OPEC declines to cut output"}})

	f.SelectEvent("2014-11-27")
	f.SelectEvent("2001-09-11")

	require.Len(t, rec.events, 2)
	assert.Equal(t, &models.Event{Date: "2014-11-27", Title: "OPEC declines to cut output"}, rec.events[0])
	assert.Equal(t, &models.Event{Date: "2001-09-11", Title: "Custom Date"}, rec.events[1])

	v := f.View()
	assert.True(t, v.ShowEventSelect())
	require.NotNil(t, v.Selected)
	assert.Equal(t, "2001-09-11", v.Selected.Date)
}

func TestFiltersClearEventKeepsRange(t *testing.T) {
	f, rec := newRecordedFilters()
	f.SetStartDate("2010-01-01")
	f.SelectEvent("2014-11-27")

	f.ClearEvent()

	require.Len(t, rec.events, 2)
	assert.Nil(t, rec.events[1])
	assert.Empty(t, rec.filters)
	v := f.View()
	assert.Nil(t, v.Selected)
	assert.Equal(t, "2010-01-01", v.StartDate)
}

func TestFiltersReset(t *testing.T) {
	f, rec := newRecordedFilters()
	f.SetStartDate("2010-01-01")
	f.SelectEvent("2014-11-27")

	f.Reset()

	require.Len(t, rec.filters, 1)
	assert.True(t, rec.filters[0].IsZero())
	require.Len(t, rec.events, 2)
	assert.Nil(t, rec.events[1])

	v := f.View()
	assert.Equal(t, "2019-06-15", v.StartDate)
	assert.Equal(t, "2024-06-15", v.EndDate)
	assert.Nil(t, v.Selected)
}

func TestFiltersTogglePanel(t *testing.T) {
	f, _ := newRecordedFilters()

	f.TogglePanel()
	v := f.View()
	assert.True(t, v.PanelOpen)
	assert.Equal(t, "Hide Filters", v.ToggleLabel)

	f.TogglePanel()
	assert.False(t, f.View().PanelOpen)
}

func TestFiltersRestoreFiresNothing(t *testing.T) {
	f, rec := newRecordedFilters()
	start := ""
	f.Restore(&start, nil, &models.Event{Date: "2020-04-20", Title: "Custom Date"}, true)

	v := f.View()
	assert.Empty(t, v.StartDate)
	assert.Equal(t, "2024-06-15", v.EndDate)
	assert.True(t, v.PanelOpen)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "2020-04-20", v.Selected.Date)
	assert.Empty(t, rec.filters)
	assert.Empty(t, rec.events)
}

func TestQuickRangeLabels(t *testing.T) {
	var labels []string
	for _, r := range QuickRanges() {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"Last 1 Year", "Last 3 Years", "Last 5 Years", "Full Range"}, labels)
}
