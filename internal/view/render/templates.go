package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"BrentDash/internal/view"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Links builds the URLs a page links to. Every link carries the current
// page state.
type Links interface {
	Page() string
	Tab(tab string) string
	Filter(op string, kv ...string) string
	ToggleTheme() string
	Fragment(name string) string
	PriceChartSVG(props view.PriceChartProps) string
	Export() string
	// Hidden lists the state as form fields, minus the omitted names.
	Hidden(omit ...string) []Field
}

// Field is a hidden form input.
type Field struct {
	Name  string
	Value string
}

// Page is the data handed to the page templates.
type Page struct {
	Title     string
	Shell     view.ShellView
	Dashboard view.DashboardView
	Links     Links
	Tabs      []TabLink
	// Charts holds inline SVG keyed by chart slot.
	Charts map[string][]byte
}

// TabLink is one tab button.
type TabLink struct {
	ID     string
	Label  string
	Active bool
}

// TabLinks lists the dashboard tabs in display order.
func TabLinks(active view.Tab) []TabLink {
	tabs := []TabLink{
		{ID: string(view.TabPrices), Label: "Price Analysis"},
		{ID: string(view.TabVolatility), Label: "Volatility Analysis"},
		{ID: string(view.TabEvents), Label: "Events & Impact"},
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].ID == string(active)
	}
	return tabs
}

// Fragment is the data handed to a deferred component fragment.
type Fragment struct {
	Shell       view.ShellView
	PriceChart  *view.PriceChartView
	ChangePoint *view.ChangePointView
	Timeline    *view.EventTimelineView
	Links       Links
	Charts      map[string][]byte
}

// ErrorPage is the data handed to the error page.
type ErrorPage struct {
	Title  string
	Shell  view.ShellView
	Errors []ErrorItem
}

// ErrorItem is one line on the error page.
type ErrorItem struct {
	Message string
}

// Templates renders the embedded HTML templates. It satisfies
// echo.Renderer.
type Templates struct {
	tmpl *template.Template
}

func NewTemplates() (*Templates, error) {
	t, err := template.New("brentdash").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{tmpl: t}, nil
}

// Render executes the named template.
func (t *Templates) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	if err := t.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
