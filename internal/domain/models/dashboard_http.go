package models

// Requests for the dashboard HTTP endpoints. Page state travels in the
// query string so every view can be rebuilt from its URL.

// DashboardRequest is the page state carried by `GET /` and every fragment.
// Draft bounds (ds, de) are the filter inputs that have not been applied;
// their presence is read from the raw query since an empty value is a
// meaningful "cleared" draft.
type DashboardRequest struct {
	Tab        string `query:"tab" json:"tab" default:"prices" validate:"oneof=prices volatility events"`
	From       string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	DraftStart string `query:"ds" json:"ds" validate:"omitempty,datetime=2006-01-02"`
	DraftEnd   string `query:"de" json:"de" validate:"omitempty,datetime=2006-01-02"`
	Event      string `query:"event" json:"event" validate:"omitempty,max=32"`
	EventTitle string `query:"event_title" json:"event_title" validate:"omitempty,max=200"`
	Panel      string `query:"panel" json:"panel" default:"closed" validate:"oneof=open closed"`
}

// FilterActionRequest drives one filter operation and carries the current
// page state so the redirect can rebuild it.
type FilterActionRequest struct {
	DashboardRequest
	Op    string `query:"op" json:"op" validate:"required,oneof=quick apply reset select-event clear-event toggle-panel"`
	Range string `query:"range" json:"range" validate:"required_if=Op quick,omitempty,oneof=1y 3y 5y all"`
	Date  string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ChartRequest selects what the standalone SVG chart shows.
type ChartRequest struct {
	ChangePoint     string `query:"cp" validate:"omitempty,datetime=2006-01-02"`
	HighlightedDate string `query:"hl" validate:"omitempty,datetime=2006-01-02"`
	ShowVolatility  bool   `query:"volatility"`
	Width           int    `query:"w" default:"960" validate:"gte=200,lte=2400"`
	Height          int    `query:"h" default:"350" validate:"gte=120,lte=1200"`
}

// ExportRequest bounds the CSV export.
type ExportRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// SummaryStats are the dashboard header numbers.
type SummaryStats struct {
	TotalPoints       int     `json:"total_points"`
	DateRange         string  `json:"date_range"`
	AveragePrice      float64 `json:"average_price"`
	HasAverage        bool    `json:"has_average"`
	ChangePointsCount int     `json:"change_points_count"`
}
