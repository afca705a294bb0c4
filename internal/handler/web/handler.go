package web

import (
	"time"

	domsvc "BrentDash/internal/domain/service"
	"BrentDash/internal/service/ratelimit"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	"BrentDash/pkg/http/middleware"
	applogger "BrentDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

const pageTitle = "Brent Oil Price Analysis Dashboard"

// Options tune the dashboard pages.
type Options struct {
	VolatilityWindow             int
	VolatilityTabShowsVolatility bool
	DeferredFragments            bool
	ChartWidth                   int
	ChartHeight                  int
	Now                          func() time.Time
}

// DashboardHandler serves the dashboard pages, fragments, charts and the
// JSON and CSV views of the same data.
type DashboardHandler struct {
	logger    *applogger.Logger
	api       domsvc.AnalyticsAPI
	shell     *view.Shell
	charts    *render.ChartRenderer
	templates *render.Templates
	limiter   *ratelimit.Limiter
	opts      Options
}

func NewDashboardHandler(
	logger *applogger.Logger,
	api domsvc.AnalyticsAPI,
	shell *view.Shell,
	charts *render.ChartRenderer,
	templates *render.Templates,
	limiter *ratelimit.Limiter,
	opts Options,
) *DashboardHandler {
	if logger == nil {
		logger = applogger.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DashboardHandler{
		logger:    logger,
		api:       api,
		shell:     shell,
		charts:    charts,
		templates: templates,
		limiter:   limiter,
		opts:      opts,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h.templates

	e.GET("/", h.Page)
	e.GET("/filters", h.Filter)
	e.GET("/tabs/:tab", h.SelectTab)
	e.POST("/theme/toggle", h.ToggleTheme)

	f := e.Group("/fragments")
	f.GET("/price-chart", h.PriceChartFragment)
	f.GET("/change-point", h.ChangePointFragment)
	f.GET("/events", h.EventsFragment)

	e.GET("/charts/price.svg", h.PriceChartSVG)
	e.GET("/export/prices.csv", h.ExportCSV)

	g := e.Group("/api")
	g.GET("/dashboard", h.DashboardJSON)
	g.GET("/health", h.Health)
	g.RouteNotFound("/*", h.APINotFound)
}

func (h *DashboardHandler) dashboardOptions(deferred bool) view.DashboardOptions {
	return view.DashboardOptions{
		VolatilityWindow:             h.opts.VolatilityWindow,
		VolatilityTabShowsVolatility: h.opts.VolatilityTabShowsVolatility,
		Deferred:                     deferred,
		Now:                          h.opts.Now,
	}
}

// newLifecycle scopes component fetches to the request.
func (h *DashboardHandler) newLifecycle(c echo.Context) *view.Lifecycle {
	l := h.logger
	if id, ok := c.Get(middleware.RequestIDKey).(string); ok && id != "" {
		l = l.With(applogger.String("request_id", id))
	}
	return view.NewLifecycle(c.Request().Context(), l)
}
