package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"BrentDash/internal/domain/models"
	domrepo "BrentDash/internal/domain/repository"
	applogger "BrentDash/pkg/logger"
)

// DefaultSystem defers the first theme choice to the client's
// prefers-color-scheme hint.
const DefaultSystem = "system"

// ThemeService owns the process-wide theme. The stored value is read once
// at startup and written on every change.
type ThemeService struct {
	store    domrepo.ThemeStore
	fallback string
	metrics  domrepo.Metrics
	logger   *applogger.Logger

	mu       sync.Mutex
	current  models.Theme
	resolved bool
}

func NewThemeService(store domrepo.ThemeStore, fallback string, metrics domrepo.Metrics, l *applogger.Logger) *ThemeService {
	if l == nil {
		l = applogger.NewNop()
	}
	return &ThemeService{store: store, fallback: fallback, metrics: metrics, logger: l}
}

// Load reads the stored theme. A missing or invalid value is not an error:
// the theme stays unresolved until the first request supplies a hint.
func (s *ThemeService) Load(ctx context.Context) error {
	raw, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domrepo.ErrThemeNotFound) {
			return nil
		}
		return fmt.Errorf("load theme: %w", err)
	}

	theme, err := models.ParseTheme(raw)
	if err != nil {
		s.logger.Warn("ignoring stored theme", applogger.String("value", raw))
		return nil
	}

	s.mu.Lock()
	s.current, s.resolved = theme, true
	s.mu.Unlock()
	return nil
}

// Current returns the active theme, resolving and persisting it on first
// use. hint is the client's preference and may be empty.
func (s *ThemeService) Current(ctx context.Context, hint models.Theme) models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(ctx, hint)
}

// Resolved returns the active theme without resolving it. ok is false
// until a theme has been loaded, set or resolved from a request.
func (s *ThemeService) Resolved() (theme models.Theme, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.resolved
}

// Toggle flips the theme and persists it. The in-memory theme changes even
// when persisting fails; the error is returned for logging.
func (s *ThemeService) Toggle(ctx context.Context, hint models.Theme) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.resolveLocked(ctx, hint).Toggle()
	s.current = next
	if s.metrics != nil {
		s.metrics.RecordThemeToggle(next)
	}
	if err := s.store.Save(ctx, next); err != nil {
		return next, fmt.Errorf("persist theme: %w", err)
	}
	return next, nil
}

// Set stores theme explicitly.
func (s *ThemeService) Set(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current, s.resolved = theme, true
	if err := s.store.Save(ctx, theme); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

func (s *ThemeService) resolveLocked(ctx context.Context, hint models.Theme) models.Theme {
	if s.resolved {
		return s.current
	}

	theme := models.ThemeLight
	switch s.fallback {
	case string(models.ThemeDark):
		theme = models.ThemeDark
	case string(models.ThemeLight):
	default:
		if hint.Valid() {
			theme = hint
		}
	}

	s.current, s.resolved = theme, true
	if err := s.store.Save(ctx, theme); err != nil {
		s.logger.Warn("persist initial theme failed", applogger.Error(err))
	}
	return theme
}

// ParseColorSchemeHint reads a Sec-CH-Prefers-Color-Scheme header value,
// which may be quoted. Unknown values yield "".
func ParseColorSchemeHint(header string) models.Theme {
	v := strings.Trim(strings.TrimSpace(header), `"`)
	theme, err := models.ParseTheme(strings.ToLower(v))
	if err != nil {
		return ""
	}
	return theme
}
