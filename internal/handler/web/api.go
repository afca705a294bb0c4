package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	xhttp "BrentDash/pkg/http"
	applogger "BrentDash/pkg/logger"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

// DashboardResponse is the JSON view of the dashboard.
type DashboardResponse struct {
	Tab         string               `json:"tab"`
	Theme       models.Theme         `json:"theme"`
	Stats       models.SummaryStats  `json:"stats"`
	Filter      models.FilterState   `json:"filter"`
	Event       *models.Event        `json:"event,omitempty"`
	Events      []models.Event       `json:"events"`
	PriceChart  *PriceChartResponse  `json:"price_chart,omitempty"`
	ChangePoint *ChangePointResponse `json:"change_point,omitempty"`
	Timeline    []view.TimelineEntry `json:"timeline,omitempty"`
	Markers     []view.Marker        `json:"markers"`
	QuickRanges []view.QuickRange    `json:"quick_ranges"`
}

// PriceChartResponse summarises a price chart.
type PriceChartResponse struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Mode   string            `json:"mode"`
	Points []view.ChartPoint `json:"points"`
}

// ChangePointResponse is the change-point card.
type ChangePointResponse struct {
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
	Found          bool   `json:"found"`
	TauDate        string `json:"tau_date,omitempty"`
	MeanBefore     string `json:"mean_before,omitempty"`
	MeanAfter      string `json:"mean_after,omitempty"`
	PriceChange    string `json:"price_change,omitempty"`
	ChangeClass    string `json:"change_class,omitempty"`
	Interpretation string `json:"interpretation,omitempty"`
}

// DashboardJSON mounts the full dashboard and returns it as JSON.
func (h *DashboardHandler) DashboardJSON(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	st := stateFromRequest(*req, c.QueryParams())

	lc := h.newLifecycle(c)
	defer lc.Unmount()

	dash := view.NewDashboard(lc, h.api, h.dashboardOptions(false))
	dash.Restore(st.ViewState())
	dash.Mount()
	lc.Wait()
	v := dash.View()

	resp := DashboardResponse{
		Tab:         string(v.Tab),
		Theme:       h.shellView(c).Theme,
		Stats:       v.Stats,
		Filter:      v.Applied,
		Event:       v.Event,
		Events:      v.Filters.Events,
		Markers:     view.Markers(v.ChartProps.ChangePoint, v.ChartProps.HighlightedDate),
		QuickRanges: v.Filters.QuickRanges,
	}
	if resp.Events == nil {
		resp.Events = []models.Event{}
	}
	if pc := v.PriceChart; pc != nil {
		resp.PriceChart = &PriceChartResponse{Status: string(pc.Status), Error: pc.Error, Mode: string(pc.Mode), Points: pc.Points}
	}
	if cp := v.ChangePoint; cp != nil {
		resp.ChangePoint = &ChangePointResponse{
			Status:         string(cp.Status),
			Error:          cp.Error,
			Found:          cp.Found,
			TauDate:        cp.TauDate,
			MeanBefore:     cp.MeanBefore,
			MeanAfter:      cp.MeanAfter,
			PriceChange:    cp.PriceChange,
			ChangeClass:    cp.ChangeClass,
			Interpretation: cp.Interpretation,
		}
	}
	if v.Timeline != nil {
		resp.Timeline = v.Timeline.Entries
	}
	return xhttp.SuccessResponse(c, resp)
}

// PriceChartSVG renders the price chart as a standalone SVG.
func (h *DashboardHandler) PriceChartSVG(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	lc := h.newLifecycle(c)
	defer lc.Unmount()

	chart := view.NewPriceChart(lc, h.api, "svg/price-chart", h.opts.VolatilityWindow)
	chart.Mount(view.PriceChartProps{
		ChangePoint:     req.ChangePoint,
		HighlightedDate: req.HighlightedDate,
		ShowVolatility:  req.ShowVolatility,
	})
	lc.Wait()

	v := chart.View()
	if v.Status != view.StatusReady {
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError(v.Error, nil))
	}

	b, err := h.charts.PriceChart(v, render.ChartOptions{
		Width:  req.Width,
		Height: req.Height,
		Theme:  h.shellView(c).Theme,
	})
	if err != nil {
		h.logger.Error("chart render failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("chart render failed").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return c.Blob(http.StatusOK, "image/svg+xml", b)
}

// ExportCSV downloads the (optionally filtered) price series.
func (h *DashboardHandler) ExportCSV(c echo.Context) error {
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := c.RealIP() + ":export"
	if h.limiter != nil && !h.limiter.Allow(key) {
		wait := h.limiter.RetryAfter(key)
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		h.logger.Warn("export rate limited", applogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many export requests"))
	}

	points, err := h.api.Prices(c.Request().Context(), models.NewFilterState(req.From, req.To))
	if err != nil {
		h.logger.Error("export prices failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("Failed to load price data", err))
	}

	b, err := gocsv.MarshalBytes(&points)
	if err != nil {
		h.logger.Error("export encode failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("export encode failed").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportName(req)))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", b)
}

// Health reports liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, xhttp.HealthResponse{Status: "OK"})
}

func exportName(req *models.ExportRequest) string {
	name := "brent-prices"
	if req.From != "" {
		name += "-from-" + req.From
	}
	if req.To != "" {
		name += "-to-" + req.To
	}
	return name + ".csv"
}

// APINotFound answers unknown /api paths with the JSON envelope instead of
// echo's default body.
func (h *DashboardHandler) APINotFound(c echo.Context) error {
	return xhttp.AppErrorResponse(c, xhttp.NotFoundError("unknown endpoint "+c.Request().URL.Path))
}
