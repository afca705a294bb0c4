//go:build wireinject
// +build wireinject

package di

import (
	"BrentDash/internal/usecase"
	"BrentDash/pkg/config"
	"BrentDash/pkg/server"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideKafkaProducer,
	ProvideLogger,
	ProvideMetrics,
	ProvideCache,
)

var themeSet = wire.NewSet(
	ProvideThemeStore,
	ProvideThemeService,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		infraSet,
		themeSet,

		ProvideAnalytics,
		ProvideShell,
		ProvideChartCache,
		ProvideChartRenderer,
		ProvideTemplates,
		ProvideLimiter,
		ProvideDashboardHandler,

		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeThemeService wires only what the theme commands need.
func InitializeThemeService(cfg *config.Config) (*usecase.ThemeService, func(), error) {
	wire.Build(infraSet, themeSet)
	return nil, nil, nil
}
