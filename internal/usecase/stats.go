package usecase

import (
	"BrentDash/internal/domain/models"

	"github.com/montanaflynn/stats"
)

// DetectedChangePoints is shown in the header. The upstream model detects
// exactly one break, so the figure is fixed.
const DetectedChangePoints = 1

const notAvailable = "N/A"

// ComputeStats derives the header numbers from a price series.
func ComputeStats(points []models.PricePoint) models.SummaryStats {
	s := models.SummaryStats{
		TotalPoints:       len(points),
		DateRange:         DateRange(points),
		ChangePointsCount: DetectedChangePoints,
	}
	s.AveragePrice, s.HasAverage = AveragePrice(points)
	return s
}

// RefreshStats recomputes total, date range and average from a filtered
// series. The change-point count is carried over untouched.
func RefreshStats(prev models.SummaryStats, points []models.PricePoint) models.SummaryStats {
	next := ComputeStats(points)
	next.ChangePointsCount = prev.ChangePointsCount
	return next
}

// DateRange formats "{first} to {last}"; a missing end renders as N/A.
func DateRange(points []models.PricePoint) string {
	first, last := notAvailable, notAvailable
	if len(points) > 0 {
		if d := points[0].Date; d != "" {
			first = d
		}
		if d := points[len(points)-1].Date; d != "" {
			last = d
		}
	}
	return first + " to " + last
}

// AveragePrice is the mean of the non-null prices rounded to two decimals.
// ok is false when no price is present.
func AveragePrice(points []models.PricePoint) (avg float64, ok bool) {
	prices := make(stats.Float64Data, 0, len(points))
	for _, p := range points {
		if p.Price != nil {
			prices = append(prices, *p.Price)
		}
	}
	if len(prices) == 0 {
		return 0, false
	}

	mean, err := stats.Mean(prices)
	if err != nil {
		return 0, false
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return mean, true
	}
	return rounded, true
}
