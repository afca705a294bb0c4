package web

import (
	"context"
	"errors"
	"net/http"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/usecase"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	xhttp "BrentDash/pkg/http"
	applogger "BrentDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

const colorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// Page renders the dashboard for the state in the query string.
func (h *DashboardHandler) Page(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.errorPage(c, http.StatusBadRequest, verr)
	}
	st := stateFromRequest(*req, c.QueryParams())

	lc := h.newLifecycle(c)
	defer lc.Unmount()

	dash := view.NewDashboard(lc, h.api, h.dashboardOptions(h.opts.DeferredFragments))
	dash.Restore(st.ViewState())
	dash.Mount()
	lc.Wait()
	v := dash.View()

	shell := h.shellView(c)
	c.Response().Header().Set("Accept-CH", colorSchemeHeader)
	return c.Render(http.StatusOK, "page", render.Page{
		Title:     pageTitle,
		Shell:     shell,
		Dashboard: v,
		Links:     links{state: st},
		Tabs:      render.TabLinks(v.Tab),
		Charts:    h.renderCharts(v.PriceChart, v.ChangePoint, shell),
	})
}

// Filter applies one filter operation and redirects to the resulting
// page state.
func (h *DashboardHandler) Filter(c echo.Context) error {
	req := &models.FilterActionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.errorPage(c, http.StatusBadRequest, verr)
	}
	st := stateFromRequest(req.DashboardRequest, c.QueryParams())
	vs := st.ViewState()

	applied := vs.Applied
	filters := view.NewFilters(h.opts.Now)
	filters.Restore(vs.DraftStart, vs.DraftEnd, vs.Event, vs.PanelOpen)
	filters.OnFilterChange = func(fs models.FilterState) { applied = fs }

	switch req.Op {
	case "quick":
		if err := filters.ApplyQuickRange(req.Range); err != nil {
			return h.errorPage(c, http.StatusBadRequest, err)
		}
	case "apply":
		filters.Apply()
	case "reset":
		filters.Reset()
	case "select-event":
		if req.Date == "" {
			filters.ClearEvent()
			break
		}
		filters.SetEvents(h.loadEvents(c.Request().Context()))
		filters.SelectEvent(req.Date)
	case "clear-event":
		filters.ClearEvent()
	case "toggle-panel":
		filters.TogglePanel()
	}

	next := stateFromFilters(st.Tab, applied, filters.View())
	return c.Redirect(http.StatusSeeOther, next.URL("/"))
}

// SelectTab switches the active tab.
func (h *DashboardHandler) SelectTab(c echo.Context) error {
	tab, err := view.ParseTab(c.Param("tab"))
	if err != nil {
		return h.errorPage(c, http.StatusNotFound, err)
	}
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.errorPage(c, http.StatusBadRequest, verr)
	}
	st := stateFromRequest(*req, c.QueryParams())
	st.Tab = tab
	return c.Redirect(http.StatusSeeOther, st.URL("/"))
}

// ToggleTheme flips the theme and goes back to the page it came from.
func (h *DashboardHandler) ToggleTheme(c echo.Context) error {
	h.shell.ToggleTheme(c.Request().Context(), h.themeHint(c))
	return c.Redirect(http.StatusSeeOther, safeReturn(c.QueryParam("return")))
}

// loadEvents is used for title lookup only; a failure means custom dates.
func (h *DashboardHandler) loadEvents(ctx context.Context) []models.Event {
	list, err := h.api.Events(ctx)
	if err != nil {
		h.logger.Warn("events unavailable", applogger.Error(err))
		return nil
	}
	return list.Events
}

func (h *DashboardHandler) themeHint(c echo.Context) models.Theme {
	return usecase.ParseColorSchemeHint(c.Request().Header.Get(colorSchemeHeader))
}

func (h *DashboardHandler) shellView(c echo.Context) view.ShellView {
	return h.shell.View(c.Request().Context(), h.themeHint(c))
}

// renderCharts draws the ready charts for inline embedding. A render
// failure leaves the chart out.
func (h *DashboardHandler) renderCharts(price *view.PriceChartView, cp *view.ChangePointView, shell view.ShellView) map[string][]byte {
	out := make(map[string][]byte)
	opts := render.ChartOptions{Width: h.opts.ChartWidth, Height: h.opts.ChartHeight, Theme: shell.Theme}

	draw := func(name string, v *view.PriceChartView) {
		if v == nil || v.Status != view.StatusReady {
			return
		}
		b, err := h.charts.PriceChart(*v, opts)
		if err != nil {
			h.logger.Error("chart render failed", applogger.String("chart", name), applogger.Error(err))
			return
		}
		out[name] = b
	}

	draw("price", price)
	if cp != nil {
		draw("change-point", cp.Chart)
	}
	return out
}

func (h *DashboardHandler) errorPage(c echo.Context, status int, cause interface{}) error {
	page := render.ErrorPage{
		Title: http.StatusText(status),
		Shell: h.shellView(c),
	}
	switch v := cause.(type) {
	case []xhttp.ValidationError:
		for _, e := range v {
			page.Errors = append(page.Errors, render.ErrorItem{Message: e.Message})
		}
	case error:
		var appErr *xhttp.AppError
		if errors.As(v, &appErr) {
			page.Errors = append(page.Errors, render.ErrorItem{Message: appErr.Message})
		} else {
			page.Errors = append(page.Errors, render.ErrorItem{Message: v.Error()})
		}
	}
	return c.Render(status, "error-page", page)
}
