package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"BrentDash/pkg/config"
	xhttp "BrentDash/pkg/http"
	applogger "BrentDash/pkg/logger"
)

// ThemeLoader restores the persisted theme before the first request.
type ThemeLoader interface {
	Load(ctx context.Context) error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	themes      ThemeLoader
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, h xhttp.Handler, themes ThemeLoader) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	return &App{
		cfg:         cfg,
		logger:      l,
		httpHandler: h,
		themes:      themes,
	}
}

// Server builds the HTTP server without starting it.
func (a *App) Server() *xhttp.Server {
	if a.httpServer != nil {
		return a.httpServer
	}
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, a.logger,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithSlowRequest(a.cfg.Server.SlowRequest),
	)
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and shuts it down once ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if a.themes != nil {
		if err := a.themes.Load(ctx); err != nil {
			// unreadable store: serve with the configured default
			a.logger.Warn("theme load failed", applogger.Error(err))
		}
	}

	srv := a.Server()
	if err := srv.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return fmt.Errorf("start http server: %w", err)
	}
	a.logger.Info("dashboard started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("analytics", a.cfg.Analytics.BaseURL),
		applogger.Bool("deferred_fragments", a.cfg.UI.DeferredFragments),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are
// closed by the caller's cleanup.
func (a *App) shutdown() error {
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
