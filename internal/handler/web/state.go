package web

import (
	"net/url"
	"strings"

	"BrentDash/internal/domain/models"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	"BrentDash/pkg/util"
)

// Query parameter names of the page state.
const (
	paramTab        = "tab"
	paramFrom       = "from"
	paramTo         = "to"
	paramDraftStart = "ds"
	paramDraftEnd   = "de"
	paramEvent      = "event"
	paramEventTitle = "event_title"
	paramPanel      = "panel"
)

// PageState is the dashboard state carried in the URL.
type PageState struct {
	Tab        view.Tab
	From       string
	To         string
	DraftStart *string // nil when the draft was never edited
	DraftEnd   *string
	Event      string
	EventTitle string
	PanelOpen  bool
}

// stateFromRequest maps a validated request onto the page state. query is
// consulted for draft presence, since an empty draft differs from none.
func stateFromRequest(req models.DashboardRequest, query url.Values) PageState {
	tab, err := view.ParseTab(req.Tab)
	if err != nil {
		tab = view.TabPrices
	}
	st := PageState{
		Tab:        tab,
		From:       req.From,
		To:         req.To,
		Event:      req.Event,
		EventTitle: req.EventTitle,
		PanelOpen:  req.Panel == "open",
	}
	if _, ok := query[paramDraftStart]; ok {
		ds := req.DraftStart
		st.DraftStart = &ds
	}
	if _, ok := query[paramDraftEnd]; ok {
		de := req.DraftEnd
		st.DraftEnd = &de
	}
	return st
}

// ViewState converts to what the dashboard restores from.
func (s PageState) ViewState() view.State {
	st := view.State{
		Tab:        s.Tab,
		Applied:    models.NewFilterState(s.From, s.To),
		DraftStart: s.DraftStart,
		DraftEnd:   s.DraftEnd,
		PanelOpen:  s.PanelOpen,
	}
	if s.Event != "" {
		st.Event = &models.Event{Date: s.Event, Title: util.FirstNonEmpty(s.EventTitle, models.CustomEventTitle)}
	}
	return st
}

// stateFromFilters captures the state after a filter operation.
func stateFromFilters(tab view.Tab, applied models.FilterState, f view.FiltersView) PageState {
	ds, de := f.StartDate, f.EndDate
	st := PageState{
		Tab:        tab,
		From:       applied.Start(),
		To:         applied.End(),
		DraftStart: &ds,
		DraftEnd:   &de,
		PanelOpen:  f.PanelOpen,
	}
	if f.Selected != nil {
		st.Event = f.Selected.Date
		st.EventTitle = f.Selected.Title
	}
	return st
}

// Values encodes the non-default parts of the state.
func (s PageState) Values() url.Values {
	v := url.Values{}
	if s.Tab != "" && s.Tab != view.TabPrices {
		v.Set(paramTab, string(s.Tab))
	}
	setIf(v, paramFrom, s.From)
	setIf(v, paramTo, s.To)
	if s.DraftStart != nil {
		v.Set(paramDraftStart, *s.DraftStart)
	}
	if s.DraftEnd != nil {
		v.Set(paramDraftEnd, *s.DraftEnd)
	}
	setIf(v, paramEvent, s.Event)
	if s.Event != "" {
		setIf(v, paramEventTitle, s.EventTitle)
	}
	if s.PanelOpen {
		v.Set(paramPanel, "open")
	}
	return v
}

// URL joins path with the encoded state.
func (s PageState) URL(path string) string {
	return withQuery(path, s.Values())
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// safeReturn accepts only same-site absolute paths.
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	if u, err := url.Parse(target); err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return target
}

// links implements render.Links for one page state.
type links struct {
	state PageState
}

var _ render.Links = links{}

func (l links) Page() string {
	return l.state.URL("/")
}

func (l links) Tab(tab string) string {
	return l.state.URL("/tabs/" + url.PathEscape(tab))
}

func (l links) Filter(op string, kv ...string) string {
	v := l.state.Values()
	v.Set("op", op)
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return withQuery("/filters", v)
}

func (l links) ToggleTheme() string {
	return withQuery("/theme/toggle", url.Values{"return": {l.Page()}})
}

func (l links) Fragment(name string) string {
	return l.state.URL("/fragments/" + url.PathEscape(name))
}

func (l links) PriceChartSVG(props view.PriceChartProps) string {
	v := url.Values{}
	setIf(v, "cp", props.ChangePoint)
	setIf(v, "hl", props.HighlightedDate)
	if props.ShowVolatility {
		v.Set("volatility", "true")
	}
	return withQuery("/charts/price.svg", v)
}

func (l links) Export() string {
	v := url.Values{}
	setIf(v, paramFrom, l.state.From)
	setIf(v, paramTo, l.state.To)
	return withQuery("/export/prices.csv", v)
}

func (l links) Hidden(omit ...string) []render.Field {
	v := l.state.Values()
	for _, k := range omit {
		v.Del(k)
	}
	keys := []string{paramTab, paramFrom, paramTo, paramDraftStart, paramDraftEnd, paramEvent, paramEventTitle, paramPanel}
	var out []render.Field
	for _, k := range keys {
		if _, ok := v[k]; ok {
			out = append(out, render.Field{Name: k, Value: v.Get(k)})
		}
	}
	return out
}
