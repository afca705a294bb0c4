package repository

import (
	"context"
	"errors"
	"time"

	"BrentDash/internal/domain/models"
)

// ErrThemeNotFound is returned when no theme has been stored yet.
var ErrThemeNotFound = errors.New("theme not stored")

// ThemeStore persists the single dashboard-theme value.
type ThemeStore interface {
	// Load returns the raw stored string or ErrThemeNotFound. Validation is
	// the caller's job so corrupt values can fall back to the default.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, theme models.Theme) error
}

// Metrics records dashboard telemetry.
type Metrics interface {
	RecordFetch(endpoint string, d time.Duration, err error)
	RecordCache(name string, hit bool)
	RecordRender(chart string, d time.Duration)
	RecordThemeToggle(theme models.Theme)
	RecordError(kind string)
}
