package service

import (
	"context"

	"BrentDash/internal/domain/models"
)

// AnalyticsAPI reads the pre-computed results of the analytics backend.
// Implementations return the transport error unchanged in meaning: no
// retry and no fallback data.
type AnalyticsAPI interface {
	Prices(ctx context.Context, filter models.FilterState) ([]models.PricePoint, error)
	Volatility(ctx context.Context, window int) ([]models.VolatilityPoint, error)
	ChangePoints(ctx context.Context) (models.ChangePointResult, error)
	Events(ctx context.Context) (models.EventList, error)
	EventImpacts(ctx context.Context) ([]models.EventImpact, error)
}
