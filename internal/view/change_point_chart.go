package view

import (
	"context"
	"fmt"
	"math"
	"sync"

	"BrentDash/internal/domain/models"
	domsvc "BrentDash/internal/domain/service"
	applogger "BrentDash/pkg/logger"
)

const notAvailable = "N/A"

// ChangePointView is the change-point card.
type ChangePointView struct {
	Status         Status
	Error          string
	Found          bool
	TauDate        string
	Badge          string
	MeanBefore     string
	MeanAfter      string
	PriceChange    string
	ChangeClass    string
	Interpretation string
	Chart          *PriceChartView
}

// ChangePointChart loads the detected change point once and shows it on a
// nested price chart with summary cards.
type ChangePointChart struct {
	lc     *Lifecycle
	api    domsvc.AnalyticsAPI
	logger *applogger.Logger
	key    string
	window int

	mu     sync.Mutex
	status Status
	err    string
	cp     models.ChangePoint
	found  bool
	chart  *PriceChart
}

func NewChangePointChart(lc *Lifecycle, api domsvc.AnalyticsAPI, key string, window int) *ChangePointChart {
	return &ChangePointChart{
		lc:     lc,
		api:    api,
		logger: lc.Logger().With(applogger.String("component", "change_point_chart")),
		key:    key,
		window: window,
		status: StatusLoading,
	}
}

// Mount fetches /change-points.
func (c *ChangePointChart) Mount() {
	Issue(c.lc, c.key, func(ctx context.Context) (models.ChangePointResult, error) {
		return c.api.ChangePoints(ctx)
	}, c.apply)
}

func (c *ChangePointChart) apply(res models.ChangePointResult, err error) {
	c.mu.Lock()
	if err != nil {
		c.logger.Error("error fetching change point", applogger.Error(err))
		c.status = StatusError
		c.err = errChangePointData
		c.mu.Unlock()
		return
	}

	c.cp, c.found = res.Primary()
	c.status = StatusReady
	chart := NewPriceChart(c.lc, c.api, c.key+"/price-chart", c.window)
	c.chart = chart
	c.mu.Unlock()

	// the nested chart only mounts once the date is known
	chart.Mount(PriceChartProps{ChangePoint: c.cp.TauDate})
}

// View snapshots the card.
func (c *ChangePointChart) View() ChangePointView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := ChangePointView{Status: c.status, Error: c.err}
	if c.status != StatusReady {
		return v
	}

	if c.chart != nil {
		cv := c.chart.View()
		v.Chart = &cv
	}
	if !c.found || c.cp.TauDate == "" {
		return v
	}

	v.Found = true
	v.TauDate = c.cp.TauDate
	v.Badge = "Bayesian Change Point Detected: " + c.cp.TauDate
	v.MeanBefore = FormatMean(c.cp.MuBefore)
	v.MeanAfter = FormatMean(c.cp.MuAfter)
	v.PriceChange, v.ChangeClass = FormatPercentChange(c.cp)
	v.Interpretation = c.cp.Interpretation
	return v
}

// FormatMean renders a mean as $x.xx, or N/A when absent.
func FormatMean(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatPercentChange renders the before/after change with one decimal and
// a sign, plus the price-up/price-down class. N/A keeps price-up.
func FormatPercentChange(cp models.ChangePoint) (text, class string) {
	pct, ok := cp.PercentChange()
	if !ok {
		return notAvailable, "price-up"
	}
	return FormatSignedPercent(pct)
}

// FormatSignedPercent renders pct with one decimal and an explicit sign.
// Zero, including a negative value that rounds to zero, counts as up.
func FormatSignedPercent(pct float64) (text, class string) {
	rounded := math.Round(pct*10) / 10
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	if rounded >= 0 {
		return fmt.Sprintf("+%.1f%%", rounded), "price-up"
	}
	return fmt.Sprintf("%.1f%%", rounded), "price-down"
}
