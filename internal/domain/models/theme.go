package models

import "fmt"

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeStorageKey is the single persisted key.
const ThemeStorageKey = "dashboard-theme"

// ParseTheme accepts only "light" and "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("invalid theme %q", s)
	}
}

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// CSSClass is the class applied to html and body.
func (t Theme) CSSClass() string {
	return string(t) + "-theme"
}
