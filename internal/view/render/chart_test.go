package render

import (
	"testing"
	"time"

	"BrentDash/internal/domain/models"
	svccache "BrentDash/internal/service/cache"
	"BrentDash/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderMetrics struct {
	renders int
	hits    int
	misses  int
}

func (m *renderMetrics) RecordFetch(string, time.Duration, error) {}
func (m *renderMetrics) RecordCache(_ string, hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}
func (m *renderMetrics) RecordRender(string, time.Duration) { m.renders++ }
func (m *renderMetrics) RecordThemeToggle(models.Theme)     {}
func (m *renderMetrics) RecordError(string)                 {}

func fp(v float64) *float64 { return &v }

func readyView() view.PriceChartView {
	return view.PriceChartView{
		Status: view.StatusReady,
		Mode:   view.ModeLine,
		Points: []view.ChartPoint{
			{Date: "2020-01-02", Value: fp(66.25)},
			{Date: "2020-01-03", Value: fp(67.05)},
			{Date: "2020-01-06", Value: nil},
			{Date: "2020-01-07", Value: fp(68.27)},
			{Date: "2020-01-08", Value: fp(65.44)},
		},
		Markers: view.Markers("2020-01-03", "2020-01-07"),
	}
}

func TestPriceChartRendersSVG(t *testing.T) {
	r := NewChartRenderer(nil, 0, nil, nil)

	b, err := r.PriceChart(readyView(), ChartOptions{Theme: models.ThemeLight})
	require.NoError(t, err)

	svg := string(b)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Change Point")
	assert.Contains(t, svg, "Event")
}

func TestPriceChartAreaMode(t *testing.T) {
	r := NewChartRenderer(nil, 0, nil, nil)
	v := readyView()
	v.Mode = view.ModeArea

	b, err := r.PriceChart(v, ChartOptions{Theme: models.ThemeDark, Width: 640, Height: 240})
	require.NoError(t, err)
	assert.Contains(t, string(b), `width="640"`)
}

func TestPriceChartPlaceholderForSparseData(t *testing.T) {
	r := NewChartRenderer(nil, 0, nil, nil)
	v := view.PriceChartView{
		Status: view.StatusReady,
		Points: []view.ChartPoint{{Date: "2020-01-02", Value: fp(66.25)}, {Date: "2020-01-03"}},
	}

	b, err := r.PriceChart(v, ChartOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(b), "Not enough data to draw a chart")
	assert.Contains(t, string(b), `width="960"`)
}

func TestPriceChartIsCached(t *testing.T) {
	m := &renderMetrics{}
	c := svccache.NewTTLCache(8)
	r := NewChartRenderer(c, time.Minute, m, nil)

	first, err := r.PriceChart(readyView(), ChartOptions{Theme: models.ThemeLight})
	require.NoError(t, err)
	second, err := r.PriceChart(readyView(), ChartOptions{Theme: models.ThemeLight})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.renders)
	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)

	// a different theme is a different image
	_, err = r.PriceChart(readyView(), ChartOptions{Theme: models.ThemeDark})
	require.NoError(t, err)
	assert.Equal(t, 2, m.renders)
	assert.Equal(t, 2, c.Len())
}

func TestPlottableSplitsAtGaps(t *testing.T) {
	segs, minT, maxT, minY, maxY := plottable(readyView().Points)

	require.Len(t, segs, 2)
	assert.Len(t, segs[0].x, 2)
	assert.Len(t, segs[1].x, 2)
	assert.Equal(t, "2020-01-02", minT.Format("2006-01-02"))
	assert.Equal(t, "2020-01-08", maxT.Format("2006-01-02"))
	assert.InDelta(t, 65.44, minY, 1e-9)
	assert.InDelta(t, 68.27, maxY, 1e-9)
}

func TestDashArray(t *testing.T) {
	assert.Equal(t, []float64{5, 5}, dashArray("5 5"))
	assert.Nil(t, dashArray(""))
}

func TestFormatInt(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		9011:     "9,011",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatInt(in))
	}
}
