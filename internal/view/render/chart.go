package render

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"BrentDash/internal/domain/models"
	domrepo "BrentDash/internal/domain/repository"
	svccache "BrentDash/internal/service/cache"
	"BrentDash/internal/view"
	pkgcache "BrentDash/pkg/cache"
	applogger "BrentDash/pkg/logger"
	"BrentDash/pkg/util"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultChartWidth  = 960
	DefaultChartHeight = 350
)

// ChartOptions size and colour a rendered chart.
type ChartOptions struct {
	Width  int
	Height int
	Theme  models.Theme
}

type palette struct {
	background drawing.Color
	canvas     drawing.Color
	text       drawing.Color
	grid       drawing.Color
}

var (
	lightPalette = palette{
		background: drawing.ColorWhite,
		canvas:     drawing.ColorWhite,
		text:       hexColor("#1a1a2e"),
		grid:       hexColor("#e5e7eb"),
	}
	darkPalette = palette{
		background: hexColor("#16213e"),
		canvas:     hexColor("#16213e"),
		text:       hexColor("#e0e0e0"),
		grid:       hexColor("#2d3a5c"),
	}
	volatilityFill = drawing.Color{R: 16, G: 185, B: 129, A: 25}
)

// ChartRenderer turns chart views into SVG. Output is cached by content.
type ChartRenderer struct {
	cache   svccache.BytesCache
	ttl     time.Duration
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

// NewChartRenderer creates a renderer. cache and metrics may be nil.
func NewChartRenderer(cache svccache.BytesCache, ttl time.Duration, metrics domrepo.Metrics, l *applogger.Logger) *ChartRenderer {
	if l == nil {
		l = applogger.NewNop()
	}
	return &ChartRenderer{cache: cache, ttl: ttl, metrics: metrics, logger: l}
}

// PriceChart renders v as an SVG document. Fewer than two plottable points
// yield a placeholder instead of an error.
func (r *ChartRenderer) PriceChart(v view.PriceChartView, opts ChartOptions) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultChartWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultChartHeight
	}

	key := chartKey(v, opts)
	if r.cache != nil {
		if b, ok, err := r.cache.GetBytes(key); err == nil && ok {
			r.recordCache(true)
			return b, nil
		}
		r.recordCache(false)
	}

	start := time.Now()
	b, err := r.renderPrice(v, opts)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordError("chart_render")
		}
		return nil, fmt.Errorf("render price chart: %w", err)
	}
	if r.metrics != nil {
		r.metrics.RecordRender(string(v.Mode), time.Since(start))
	}

	if r.cache != nil {
		if err := r.cache.SetBytes(key, b, r.ttl); err != nil {
			r.logger.Warn("chart cache write failed", applogger.Error(err))
		}
	}
	return b, nil
}

func (r *ChartRenderer) recordCache(hit bool) {
	if r.metrics != nil {
		r.metrics.RecordCache("chart_svg", hit)
	}
}

func (r *ChartRenderer) renderPrice(v view.PriceChartView, opts ChartOptions) ([]byte, error) {
	pal := paletteFor(opts.Theme)

	segments, minT, maxT, minY, maxY := plottable(v.Points)
	if countPoints(segments) < 2 || !maxT.After(minT) {
		return placeholder(opts, pal, "Not enough data to draw a chart"), nil
	}
	if maxY <= minY {
		minY, maxY = minY-1, maxY+1
	}
	pad := (maxY - minY) * 0.05
	minY, maxY = minY-pad, maxY+pad

	name, lineColor := "Price", hexColor(view.PriceColor)
	yFormat := "$%.0f"
	if v.Mode == view.ModeArea {
		name, lineColor = "Volatility", hexColor(view.VolatilityColor)
		yFormat = "%.3f"
	}

	var series []chart.Series
	for _, seg := range segments {
		style := chart.Style{
			StrokeColor: lineColor,
			StrokeWidth: 2,
		}
		if v.Mode == view.ModeArea {
			style.FillColor = volatilityFill
		}
		series = append(series, chart.TimeSeries{
			Name:    name,
			Style:   style,
			XValues: seg.x,
			YValues: seg.y,
		})
	}

	var annotations []chart.Value2
	for _, m := range v.Markers {
		t, ok := util.ParseTime(m.Date)
		if !ok || t.Before(minT) || t.After(maxT) {
			continue
		}
		color := hexColor(m.Color)
		series = append(series, chart.TimeSeries{
			Name: m.Label,
			Style: chart.Style{
				StrokeColor:     color,
				StrokeWidth:     2,
				StrokeDashArray: dashArray(m.Dash),
			},
			XValues: []time.Time{t, t},
			YValues: []float64{minY, maxY},
		})
		annotations = append(annotations, chart.Value2{
			XValue: chart.TimeToFloat64(t),
			YValue: maxY,
			Label:  m.Label,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   pal.background,
				FontColor:   color,
				FontSize:    9,
			},
		})
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: annotations})
	}

	axisStyle := chart.Style{FontColor: pal.text, StrokeColor: pal.grid, FontSize: 9}
	gridStyle := chart.Style{StrokeColor: pal.grid, StrokeWidth: 1}
	graph := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{FillColor: pal.background, Padding: chart.Box{Top: 20, Left: 10, Right: 20, Bottom: 10}},
		Canvas:     chart.Style{FillColor: pal.canvas},
		XAxis: chart.XAxis{
			Style:          axisStyle,
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{
			Style:          axisStyle,
			GridMajorStyle: gridStyle,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf(yFormat, f)
				}
				return ""
			},
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type segment struct {
	x []time.Time
	y []float64
}

// plottable splits the series at missing values and unparsable dates so
// gaps are not bridged.
func plottable(points []view.ChartPoint) (segs []segment, minT, maxT time.Time, minY, maxY float64) {
	minY, maxY = math.Inf(1), math.Inf(-1)
	var cur segment
	flush := func() {
		if len(cur.x) > 0 {
			segs = append(segs, cur)
		}
		cur = segment{}
	}

	for _, p := range points {
		t, ok := util.ParseTime(p.Date)
		if !ok || p.Value == nil || math.IsNaN(*p.Value) {
			flush()
			continue
		}
		y := *p.Value
		if minT.IsZero() || t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		cur.x = append(cur.x, t)
		cur.y = append(cur.y, y)
	}
	flush()
	return segs, minT, maxT, minY, maxY
}

func countPoints(segs []segment) int {
	n := 0
	for _, s := range segs {
		n += len(s.x)
	}
	return n
}

func dashArray(dash string) []float64 {
	var out []float64
	for _, f := range strings.Fields(dash) {
		var v float64
		if _, err := fmt.Sscanf(f, "%g", &v); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func paletteFor(theme models.Theme) palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func colorCSS(c drawing.Color) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

func placeholder(opts ChartOptions, pal palette, msg string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, colorCSS(pal.background))
	fmt.Fprintf(&b, `<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="%s">%s</text>`,
		colorCSS(pal.text), html.EscapeString(msg))
	b.WriteString(`</svg>`)
	return []byte(b.String())
}

func chartKey(v view.PriceChartView, opts ChartOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%dx%d", v.Mode, opts.Theme, opts.Width, opts.Height)
	for _, m := range v.Markers {
		fmt.Fprintf(&b, "|m:%s:%s", m.Date, m.Label)
	}
	for _, p := range v.Points {
		if p.Value == nil {
			fmt.Fprintf(&b, "|%s:-", p.Date)
			continue
		}
		fmt.Fprintf(&b, "|%s:%g", p.Date, *p.Value)
	}
	return pkgcache.GenerateKey("chart", pkgcache.HashKey(b.String()))
}
