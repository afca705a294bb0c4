package web

import (
	"net/http"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	xhttp "BrentDash/pkg/http"

	"github.com/labstack/echo/v4"
)

// Deferred fragments load one tab child each, on their own request.

func (h *DashboardHandler) PriceChartFragment(c echo.Context) error {
	st, err := h.fragmentState(c)
	if err != nil {
		return err
	}
	lc := h.newLifecycle(c)
	defer lc.Unmount()

	// the dashboard is only asked for the props of the active tab
	dash := view.NewDashboard(lc, h.api, h.dashboardOptions(true))
	dash.Restore(st.ViewState())

	chart := view.NewPriceChart(lc, h.api, "fragment/price-chart", h.opts.VolatilityWindow)
	chart.Mount(dash.ChartProps())
	lc.Wait()

	v := chart.View()
	shell := h.shellView(c)
	return c.Render(http.StatusOK, "fragment-price-chart", render.Fragment{
		Shell:      shell,
		PriceChart: &v,
		Links:      links{state: st},
		Charts:     h.renderCharts(&v, nil, shell),
	})
}

func (h *DashboardHandler) ChangePointFragment(c echo.Context) error {
	st, err := h.fragmentState(c)
	if err != nil {
		return err
	}
	lc := h.newLifecycle(c)
	defer lc.Unmount()

	cp := view.NewChangePointChart(lc, h.api, "fragment/change-point", h.opts.VolatilityWindow)
	cp.Mount()
	lc.Wait()

	v := cp.View()
	shell := h.shellView(c)
	charts := h.renderCharts(nil, &v, shell)
	return c.Render(http.StatusOK, "fragment-change-point", render.Fragment{
		Shell:       shell,
		ChangePoint: &v,
		Links:       links{state: st},
		Charts:      charts,
	})
}

func (h *DashboardHandler) EventsFragment(c echo.Context) error {
	st, err := h.fragmentState(c)
	if err != nil {
		return err
	}
	lc := h.newLifecycle(c)
	defer lc.Unmount()

	timeline := view.NewEventTimeline(lc, h.api, "fragment/events")
	timeline.Mount()
	lc.Wait()

	v := timeline.View()
	return c.Render(http.StatusOK, "fragment-events", render.Fragment{
		Shell:    h.shellView(c),
		Timeline: &v,
		Links:    links{state: st},
	})
}

// fragmentState binds the page state; invalid state is a 400.
func (h *DashboardHandler) fragmentState(c echo.Context) (PageState, error) {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return PageState{}, echo.NewHTTPError(http.StatusBadRequest, verr)
	}
	return stateFromRequest(*req, c.QueryParams()), nil
}
