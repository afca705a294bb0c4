package view

// Status is the load state of a component.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

const (
	errPriceData       = "Failed to load price data"
	errChangePointData = "Failed to load change point data"
)
