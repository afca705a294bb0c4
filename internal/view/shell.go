package view

import (
	"context"

	"BrentDash/internal/domain/models"
	applogger "BrentDash/pkg/logger"
)

// ThemeSource is the process-wide theme setting.
type ThemeSource interface {
	Current(ctx context.Context, hint models.Theme) models.Theme
	Toggle(ctx context.Context, hint models.Theme) (models.Theme, error)
}

// ShellView is the page frame around the dashboard.
type ShellView struct {
	Theme       models.Theme
	ThemeClass  string
	ToggleLabel string
}

// Shell applies the theme to the page and toggles it.
type Shell struct {
	themes ThemeSource
	logger *applogger.Logger
}

func NewShell(themes ThemeSource, l *applogger.Logger) *Shell {
	if l == nil {
		l = applogger.NewNop()
	}
	return &Shell{themes: themes, logger: l.With(applogger.String("component", "shell"))}
}

// View resolves the current theme. hint is the client's colour-scheme
// preference, used only before any theme was stored.
func (s *Shell) View(ctx context.Context, hint models.Theme) ShellView {
	return NewShellView(s.themes.Current(ctx, hint))
}

// ToggleTheme flips the theme. A failed save is logged and the new theme
// still applies for this process.
func (s *Shell) ToggleTheme(ctx context.Context, hint models.Theme) models.Theme {
	theme, err := s.themes.Toggle(ctx, hint)
	if err != nil {
		s.logger.Error("failed to persist theme", applogger.Error(err))
	}
	return theme
}

// NewShellView derives the classes and labels for theme.
func NewShellView(theme models.Theme) ShellView {
	label := "Dark Mode: Off"
	if theme == models.ThemeDark {
		label = "Dark Mode: On"
	}
	return ShellView{
		Theme:       theme,
		ThemeClass:  theme.CSSClass(),
		ToggleLabel: label,
	}
}
