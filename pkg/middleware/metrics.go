package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/boom-router/boom/pkg/location"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "boom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "boom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	navigations        *prometheus.CounterVec
	navigationDuration prometheus.Histogram
	notifications      prometheus.Counter
	subscribers        prometheus.Gauge
}

// globalMetrics holds one metrics set per registerer, created by the
// first Prometheus call for that registerer and shared by every provider
// wrapped afterwards, so wrapping several routers never registers the
// same collector twice. Later calls for the same registerer reuse the
// first namespace, subsystem, labels and buckets.
var (
	globalMetrics   map[prometheus.Registerer]*metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by mode",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		navigationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Time spent in Navigate, including subscriber notification",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of subscriber callbacks invoked",
			ConstLabels: config.ConstLabels,
		}),

		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscribers",
			Help:        "Number of live location subscriptions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that records navigation metrics.
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = make(map[prometheus.Registerer]*metrics)
	}
	m, ok := globalMetrics[config.Registry]
	if !ok {
		m = initMetrics(config)
		globalMetrics[config.Registry] = m
	}
	globalMetricsMu.Unlock()

	return func(p location.Provider) location.Provider {
		return &metered{inner: p, m: m}
	}
}

type metered struct {
	inner location.Provider
	m     *metrics
}

func (w *metered) Subscribe(cb func()) func() {
	w.m.subscribers.Inc()
	off := w.inner.Subscribe(func() {
		w.m.notifications.Inc()
		cb()
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			off()
			w.m.subscribers.Dec()
		})
	}
}

func (w *metered) Snapshot() location.Location {
	return w.inner.Snapshot()
}

func (w *metered) Navigate(target string, opts ...location.NavigateOption) {
	mode := "push"
	if location.ApplyOptions(opts...).Replace {
		mode = "replace"
	}

	start := time.Now()
	w.inner.Navigate(target, opts...)
	w.m.navigationDuration.Observe(time.Since(start).Seconds())
	w.m.navigations.WithLabelValues(mode).Inc()
}

func (w *metered) Href(path string) string {
	return location.Href(w.inner, path)
}

func (w *metered) Unwrap() location.Provider {
	return w.inner
}
