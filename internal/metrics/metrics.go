// Package metrics holds the Prometheus collectors for composition cache
// lookups and rule loads. All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache levels.
const (
	LevelTree = "tree"
	LevelItem = "item"
)

// Metrics owns a private registry so several engines (and tests) can coexist.
type Metrics struct {
	registry     *prometheus.Registry
	cacheLookups *prometheus.CounterVec
	remoteErrors *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleforge_cache_lookups_total",
				Help: "Composition cache lookups by category, level and result",
			},
			[]string{"category", "level", "result"},
		),
		remoteErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ruleforge_remote_store_errors_total",
				Help: "Failed operations against the remote merged-tree store",
			},
			[]string{"op"},
		),
		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ruleforge_load_duration_seconds",
				Help:    "Duration of rule loads by category",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"category"},
		),
	}
	m.registry.MustRegister(m.cacheLookups, m.remoteErrors, m.loadDuration)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit records a cache hit.
func (m *Metrics) CacheHit(category, level string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(category, level, "hit").Inc()
}

// CacheMiss records a cache miss.
func (m *Metrics) CacheMiss(category, level string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(category, level, "miss").Inc()
}

// RemoteError records a failed remote store operation ("get", "put").
func (m *Metrics) RemoteError(op string) {
	if m == nil {
		return
	}
	m.remoteErrors.WithLabelValues(op).Inc()
}

// ObserveLoad records how long loading one category took.
func (m *Metrics) ObserveLoad(category string, d time.Duration) {
	if m == nil {
		return
	}
	m.loadDuration.WithLabelValues(category).Observe(d.Seconds())
}
