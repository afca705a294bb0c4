package di

import (
	"fmt"
	"time"

	"BrentDash/internal/domain/repository"
	domsvc "BrentDash/internal/domain/service"
	"BrentDash/internal/handler/web"
	internalrepo "BrentDash/internal/repository"
	svccache "BrentDash/internal/service/cache"
	"BrentDash/internal/service/ratelimit"
	"BrentDash/internal/services/analytics"
	"BrentDash/internal/usecase"
	"BrentDash/internal/view"
	"BrentDash/internal/view/render"
	pkgcache "BrentDash/pkg/cache"
	"BrentDash/pkg/config"
	pkgkafka "BrentDash/pkg/kafka"
	applogger "BrentDash/pkg/logger"
	"BrentDash/pkg/metrics"
	"BrentDash/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "brentdash"

// ProvideKafkaProducer creates the producer used by the log collector. It
// returns nil when the collector is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Logging.Collector.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger builds the application logger and, when a producer is
// available, attaches the error log collector.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	l = l.With(applogger.String("service", serviceName), applogger.String("env", cfg.Environment))

	if producer == nil {
		return l, func() {}, nil
	}
	l.AddCollector(&applogger.CollectionConfig{
		Service:        serviceName,
		TimeInterval:   cfg.Logging.Collector.Interval,
		CountThreshold: cfg.Logging.Collector.CountThreshold,
		Topic:          cfg.Logging.Collector.Topic,
		Publisher:      producer,
	})
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideCache creates the shared cache backend.
func ProvideCache(cfg *config.Config) (pkgcache.Service, func(), error) {
	var svc pkgcache.Service
	switch cfg.Cache.Backend {
	case "redis", "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
			pkgcache.WithRedisPool(cfg.Cache.Redis.Pool.Size, cfg.Cache.Redis.Pool.MinIdle, cfg.Cache.Redis.Pool.Timeout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		svc = rc
		if cfg.Cache.Backend == "layered" {
			svc = pkgcache.NewLayeredCache(rc,
				pkgcache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
				pkgcache.WithLayeredMemoryTTL(cfg.Analytics.Cache.TTL),
			)
		}
	default:
		svc = pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			pkgcache.WithMemoryCleanup(time.Minute),
		)
	}
	return svc, func() { _ = svc.Close() }, nil
}

// ProvideAnalytics creates the analytics API client, memoized through the
// cache when analytics.cache.enabled is set.
func ProvideAnalytics(cfg *config.Config, cache pkgcache.Service, m repository.Metrics, l *applogger.Logger) domsvc.AnalyticsAPI {
	client := analytics.NewClient(cfg, m)
	if !cfg.Analytics.Cache.Enabled {
		return client
	}
	return analytics.NewCachedAnalytics(client, cache, cfg.Analytics.Cache.TTL, m, l)
}

// ProvideThemeStore selects where the theme is persisted.
func ProvideThemeStore(cfg *config.Config, cache pkgcache.Service) repository.ThemeStore {
	if cfg.Theme.Store == "cache" {
		return internalrepo.NewCacheThemeStore(cache)
	}
	return internalrepo.NewFileThemeStore(cfg.Theme.Path)
}

func ProvideThemeService(cfg *config.Config, store repository.ThemeStore, m repository.Metrics, l *applogger.Logger) *usecase.ThemeService {
	return usecase.NewThemeService(store, cfg.Theme.Default, m, l)
}

func ProvideShell(themes *usecase.ThemeService, l *applogger.Logger) *view.Shell {
	return view.NewShell(themes, l)
}

// ProvideChartCache keeps rendered SVGs in process for the memory backend
// and in the shared cache otherwise.
func ProvideChartCache(cfg *config.Config, cache pkgcache.Service) svccache.BytesCache {
	if cfg.Cache.Backend == "memory" {
		return svccache.NewTTLCache(cfg.Cache.MemoryMaxSize)
	}
	return svccache.NewSharedCache(cache, "chart")
}

func ProvideChartRenderer(cfg *config.Config, cache svccache.BytesCache, m repository.Metrics, l *applogger.Logger) *render.ChartRenderer {
	return render.NewChartRenderer(cache, cfg.UI.ChartCacheTTL, m, l)
}

func ProvideTemplates() (*render.Templates, error) {
	t, err := render.NewTemplates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return t, nil
}

// ProvideLimiter throttles CSV exports per client.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Export.Burst, cfg.Export.RefillPerSec)
}

func ProvideDashboardHandler(
	cfg *config.Config,
	l *applogger.Logger,
	api domsvc.AnalyticsAPI,
	shell *view.Shell,
	charts *render.ChartRenderer,
	templates *render.Templates,
	limiter *ratelimit.Limiter,
) (*web.DashboardHandler, error) {
	loc, err := time.LoadLocation(cfg.UI.Location)
	if err != nil {
		return nil, fmt.Errorf("ui location: %w", err)
	}
	return web.NewDashboardHandler(l, api, shell, charts, templates, limiter, web.Options{
		VolatilityWindow:             cfg.Analytics.VolatilityWindow,
		VolatilityTabShowsVolatility: cfg.UI.VolatilityTabShowsVolatility,
		DeferredFragments:            cfg.UI.DeferredFragments,
		ChartWidth:                   cfg.UI.ChartWidth,
		ChartHeight:                  cfg.UI.ChartHeight,
		Now:                          func() time.Time { return time.Now().In(loc) },
	}), nil
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler *web.DashboardHandler, themes *usecase.ThemeService) *server.App {
	return server.New(cfg, l, handler, themes)
}
