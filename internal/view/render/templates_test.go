package render

import (
	"bytes"
	"testing"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLinks struct{}

func (stubLinks) Page() string                              { return "/" }
func (stubLinks) Tab(tab string) string                     { return "/tabs/" + tab }
func (stubLinks) ToggleTheme() string                       { return "/theme/toggle" }
func (stubLinks) Fragment(name string) string               { return "/fragments/" + name }
func (stubLinks) PriceChartSVG(view.PriceChartProps) string { return "/charts/price.svg" }
func (stubLinks) Export() string                            { return "/export/prices.csv" }
func (stubLinks) Hidden(...string) []Field                  { return []Field{{Name: "tab", Value: "prices"}} }
func (stubLinks) Filter(op string, kv ...string) string {
	u := "/filters?op=" + op
	for i := 0; i+1 < len(kv); i += 2 {
		u += "&" + kv[i] + "=" + kv[i+1]
	}
	return u
}

func renderPage(t *testing.T, p Page) string {
	t.Helper()
	tmpl, err := NewTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Render(&buf, "page", p, nil))
	return buf.String()
}

func TestPageRendersStatsAndTheme(t *testing.T) {
	chart := view.PriceChartView{Status: view.StatusReady, Mode: view.ModeLine, Points: make([]view.ChartPoint, 3)}
	p := Page{
		Title: "Brent",
		Shell: view.NewShellView(models.ThemeDark),
		Dashboard: view.DashboardView{
			Tab:         view.TabPrices,
			StatsStatus: view.StatusReady,
			Stats: models.SummaryStats{
				TotalPoints:       9011,
				DateRange:         "1987-05-20 to 2022-11-14",
				AveragePrice:      48.42,
				HasAverage:        true,
				ChangePointsCount: 1,
			},
			Filters:     view.FiltersView{ToggleLabel: "Show Filters"},
			PriceChart:  &chart,
			ChangePoint: &view.ChangePointView{Status: view.StatusError, Error: "Failed to load change point data"},
		},
		Links:  stubLinks{},
		Tabs:   TabLinks(view.TabPrices),
		Charts: map[string][]byte{"price": []byte(`<svg id="price"></svg>`)},
	}

	html := renderPage(t, p)
	assert.Contains(t, html, `class="dark-theme"`)
	assert.Contains(t, html, "Dark Mode: On")
	assert.Contains(t, html, "9,011")
	assert.Contains(t, html, "1987-05-20 to 2022-11-14")
	assert.Contains(t, html, "$48.42")
	assert.Contains(t, html, `<svg id="price"></svg>`)
	assert.Contains(t, html, `data-points="3"`)
	assert.Contains(t, html, "Failed to load change point data")
	assert.Contains(t, html, "Show Filters")
	assert.NotContains(t, html, "Highlight Event")
}

func TestPageDeferredFragments(t *testing.T) {
	p := Page{
		Shell: view.NewShellView(models.ThemeLight),
		Dashboard: view.DashboardView{
			Tab:         view.TabEvents,
			StatsStatus: view.StatusLoading,
			Deferred:    true,
		},
		Links: stubLinks{},
		Tabs:  TabLinks(view.TabEvents),
	}

	html := renderPage(t, p)
	assert.Contains(t, html, `hx-get="/fragments/events"`)
	assert.Contains(t, html, "skeleton")
	assert.Contains(t, html, "Dark Mode: Off")
}

func TestFilterPanelWithEvents(t *testing.T) {
	sel := models.Event{Date: "2014-11-27", Title: "OPEC"}
	p := Page{
		Shell: view.NewShellView(models.ThemeLight),
		Dashboard: view.DashboardView{
			Tab:         view.TabEvents,
			StatsStatus: view.StatusReady,
			Filters: view.FiltersView{
				StartDate:   "2019-06-15",
				EndDate:     "2024-06-15",
				PanelOpen:   true,
				ToggleLabel: "Hide Filters",
				QuickRanges: view.QuickRanges(),
				Events:      []models.Event{sel},
				Selected:    &sel,
			},
			Event:    &sel,
			Timeline: &view.EventTimelineView{Status: view.StatusReady},
		},
		Links: stubLinks{},
		Tabs:  TabLinks(view.TabEvents),
	}

	html := renderPage(t, p)
	assert.Contains(t, html, "Last 3 Years")
	assert.Contains(t, html, `/filters?op=quick&amp;range=1y`)
	assert.Contains(t, html, `value="2019-06-15"`)
	assert.Contains(t, html, "Highlight Event")
	assert.Contains(t, html, `<option value="2014-11-27" selected>`)
	assert.Contains(t, html, "Event Impact Analysis")
	assert.Contains(t, html, "No events available.")
}

func TestTabLinksMarkActive(t *testing.T) {
	tabs := TabLinks(view.TabVolatility)
	require.Len(t, tabs, 3)
	assert.False(t, tabs[0].Active)
	assert.True(t, tabs[1].Active)
	assert.Equal(t, "Events & Impact", tabs[2].Label)
}
