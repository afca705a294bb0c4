package view

import (
	"context"
	"sync"

	"BrentDash/internal/domain/models"
	domsvc "BrentDash/internal/domain/service"
	applogger "BrentDash/pkg/logger"
)

// DefaultVolatilityWindow is the rolling window, in days, requested from
// /prices/volatility.
const DefaultVolatilityWindow = 30

// ChartMode selects how the series is drawn.
type ChartMode string

const (
	ModeLine ChartMode = "line"
	ModeArea ChartMode = "area"
)

const (
	ChangePointColor = "#ef4444"
	EventColor       = "#d4a373"
	PriceColor       = "#1e3a5f"
	VolatilityColor  = "#10b981"
)

// PriceChartProps are the inputs a parent passes down.
type PriceChartProps struct {
	ChangePoint     string
	HighlightedDate string
	ShowVolatility  bool
}

// Marker is a vertical reference line.
type Marker struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Color string `json:"color"`
	Dash  string `json:"dash"`
}

// ChartPoint is one plotted value; nil values leave a gap.
type ChartPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// PriceChartView is everything needed to draw the chart.
type PriceChartView struct {
	Status  Status
	Error   string
	Mode    ChartMode
	Props   PriceChartProps
	Points  []ChartPoint
	Markers []Marker
}

type priceData struct {
	prices     []models.PricePoint
	volatility []models.VolatilityPoint
}

// PriceChart shows the price series, or the volatility area when asked to,
// with optional change-point and event markers.
type PriceChart struct {
	lc     *Lifecycle
	api    domsvc.AnalyticsAPI
	logger *applogger.Logger
	key    string
	window int

	mu         sync.Mutex
	props      PriceChartProps
	status     Status
	err        string
	prices     []models.PricePoint
	volatility []models.VolatilityPoint
}

// NewPriceChart creates a chart whose fetches run on lc under slot key.
func NewPriceChart(lc *Lifecycle, api domsvc.AnalyticsAPI, key string, window int) *PriceChart {
	if window <= 0 {
		window = DefaultVolatilityWindow
	}
	return &PriceChart{
		lc:     lc,
		api:    api,
		logger: lc.Logger().With(applogger.String("component", "price_chart"), applogger.String("slot", key)),
		key:    key,
		window: window,
		status: StatusLoading,
	}
}

// Mount sets the initial props and starts loading.
func (c *PriceChart) Mount(props PriceChartProps) {
	c.mu.Lock()
	c.props = props
	c.status = StatusLoading
	c.mu.Unlock()

	c.fetch(props.ShowVolatility)
}

// SetProps updates markers in place. Data is refetched only when the
// volatility flag flips; the superseded fetch is dropped.
func (c *PriceChart) SetProps(props PriceChartProps) {
	c.mu.Lock()
	refetch := props.ShowVolatility != c.props.ShowVolatility
	c.props = props
	if refetch {
		c.status = StatusLoading
	}
	c.mu.Unlock()

	if refetch {
		c.fetch(props.ShowVolatility)
	}
}

func (c *PriceChart) fetch(showVolatility bool) {
	window := c.window
	Issue(c.lc, c.key, func(ctx context.Context) (priceData, error) {
		prices, err := c.api.Prices(ctx, models.FilterState{})
		if err != nil {
			return priceData{}, err
		}
		out := priceData{prices: prices}
		if showVolatility {
			vol, err := c.api.Volatility(ctx, window)
			if err != nil {
				// secondary data: the price series still renders
				c.logger.Warn("volatility data unavailable", applogger.Error(err))
			} else {
				out.volatility = vol
			}
		}
		return out, nil
	}, c.apply)
}

func (c *PriceChart) apply(d priceData, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Error("error fetching price data", applogger.Error(err))
		c.status = StatusError
		c.err = errPriceData
		c.prices, c.volatility = nil, nil
		return
	}
	c.status = StatusReady
	c.err = ""
	c.prices = d.prices
	c.volatility = d.volatility
}

// View snapshots the chart.
func (c *PriceChart) View() PriceChartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := PriceChartView{
		Status:  c.status,
		Error:   c.err,
		Mode:    ModeLine,
		Props:   c.props,
		Markers: Markers(c.props.ChangePoint, c.props.HighlightedDate),
	}
	if c.status != StatusReady {
		return v
	}

	if c.props.ShowVolatility {
		// only the volatility area is drawn, price is not
		v.Mode = ModeArea
		v.Points = joinVolatility(c.prices, c.volatility)
		return v
	}

	v.Points = make([]ChartPoint, len(c.prices))
	for i, p := range c.prices {
		v.Points[i] = ChartPoint{Date: p.Date, Value: p.Price}
	}
	return v
}

// Markers builds the reference lines. The event marker is skipped when it
// falls on the change point.
func Markers(changePoint, highlighted string) []Marker {
	var out []Marker
	if changePoint != "" {
		out = append(out, Marker{Date: changePoint, Label: "Change Point", Color: ChangePointColor, Dash: "5 5"})
	}
	if highlighted != "" && highlighted != changePoint {
		out = append(out, Marker{Date: highlighted, Label: "Event", Color: EventColor, Dash: "3 3"})
	}
	return out
}

// joinVolatility keeps the price series order and length and takes each
// point's value from the volatility row with the same Date.
func joinVolatility(prices []models.PricePoint, vol []models.VolatilityPoint) []ChartPoint {
	byDate := make(map[string]*float64, len(vol))
	for _, v := range vol {
		if _, seen := byDate[v.Date]; !seen {
			byDate[v.Date] = v.Volatility
		}
	}
	out := make([]ChartPoint, len(prices))
	for i, p := range prices {
		out[i] = ChartPoint{Date: p.Date, Value: byDate[p.Date]}
	}
	return out
}
