package models

// PricePoint is one observation of the Brent price series. Price is nil
// when the upstream row carries no value.
type PricePoint struct {
	Date  string   `json:"Date" csv:"date"`
	Price *float64 `json:"Price" csv:"price"`
}

// VolatilityPoint is one row of the rolling volatility series. It joins to
// the price series on the exact Date string.
type VolatilityPoint struct {
	Date       string   `json:"Date"`
	Price      *float64 `json:"Price,omitempty"`
	Volatility *float64 `json:"Volatility"`
}

// PriceSeries is the `{data:[...]}` envelope of /prices.
type PriceSeries struct {
	Data []PricePoint `json:"data"`
}

// VolatilitySeries is the `{data:[...]}` envelope of /prices/volatility.
type VolatilitySeries struct {
	Data   []VolatilityPoint `json:"data"`
	Window int               `json:"window,omitempty"`
}

// FilterState is the applied date range. Nil bounds are not sent upstream.
type FilterState struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// NewFilterState converts form values into a FilterState; empty strings
// become nil.
func NewFilterState(start, end string) FilterState {
	var fs FilterState
	if start != "" {
		fs.StartDate = &start
	}
	if end != "" {
		fs.EndDate = &end
	}
	return fs
}

// IsZero reports whether neither bound is set.
func (f FilterState) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil
}

// Start returns the start bound or "".
func (f FilterState) Start() string {
	if f.StartDate == nil {
		return ""
	}
	return *f.StartDate
}

// End returns the end bound or "".
func (f FilterState) End() string {
	if f.EndDate == nil {
		return ""
	}
	return *f.EndDate
}
