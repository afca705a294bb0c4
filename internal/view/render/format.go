package render

import (
	"fmt"
	"html/template"
	"strconv"

	"BrentDash/internal/view"
)

// FormatInt groups thousands with commas.
func FormatInt(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// FormatPrice renders a dollar amount with two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatInt":   FormatInt,
		"formatPrice": FormatPrice,
		"statusIs": func(s view.Status, want string) bool {
			return string(s) == want
		},
		"inlineSVG": func(b []byte) template.HTML {
			// chart bytes are produced by the renderer, never by user input
			return template.HTML(b)
		},
		"deref": func(p *float64) float64 {
			if p == nil {
				return 0
			}
			return *p
		},
		"chartData": func(v *view.PriceChartView, svg []byte) chartData {
			return chartData{View: v, SVG: svg}
		},
		"cpData": func(v *view.ChangePointView, svg []byte) changePointData {
			return changePointData{View: v, SVG: svg}
		},
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	}
}

type chartData struct {
	View *view.PriceChartView
	SVG  []byte
}

type changePointData struct {
	View *view.ChangePointView
	SVG  []byte
}
