package metrics

import (
	"time"

	"BrentDash/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	renderTime   *prometheus.HistogramVec
	themeToggles *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder registered on reg. A nil reg
// uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "brentdash",
				Subsystem: "analytics",
				Name:      "fetch_duration_seconds",
				Help:      "Latency of analytics API calls by endpoint",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brentdash",
				Subsystem: "analytics",
				Name:      "fetch_errors_total",
				Help:      "Failed analytics API calls by endpoint",
			},
			[]string{"endpoint"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brentdash",
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
		renderTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "brentdash",
				Name:      "chart_render_duration_seconds",
				Help:      "Time spent rendering SVG charts",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"chart"},
		),
		themeToggles: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brentdash",
				Name:      "theme_toggles_total",
				Help:      "Theme toggles by resulting theme",
			},
			[]string{"theme"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "brentdash",
				Name:      "errors_total",
				Help:      "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordFetch records an analytics call and, when err is set, its failure.
func (r *Recorder) RecordFetch(endpoint string, d time.Duration, err error) {
	r.fetchLatency.WithLabelValues(endpoint).Observe(d.Seconds())
	if err != nil {
		r.fetchErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordCache records a hit or miss on the named cache.
func (r *Recorder) RecordCache(name string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(name, result).Inc()
}

// RecordRender records chart render latency.
func (r *Recorder) RecordRender(chart string, d time.Duration) {
	r.renderTime.WithLabelValues(chart).Observe(d.Seconds())
}

// RecordThemeToggle counts a toggle to theme.
func (r *Recorder) RecordThemeToggle(theme models.Theme) {
	r.themeToggles.WithLabelValues(string(theme)).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Nop discards everything; handy in tests.
type Nop struct{}

func (Nop) RecordFetch(string, time.Duration, error) {}
func (Nop) RecordCache(string, bool)                 {}
func (Nop) RecordRender(string, time.Duration)       {}
func (Nop) RecordThemeToggle(models.Theme)           {}
func (Nop) RecordError(string)                       {}
