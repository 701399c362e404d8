// Package prometheus registers and exposes the service's metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements the application's metric surface on a dedicated
// registry, so tests can create instances without collisions.
type Metrics struct {
	registry *prometheus.Registry

	profileStoreHits prometheus.Counter
	computations     *prometheus.CounterVec
	computeDuration  prometheus.Histogram
	recalcTriggered  *prometheus.CounterVec
	recalcSkipped    *prometheus.CounterVec
	recalcFailed     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New builds and registers every metric under the given namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		profileStoreHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_store_hits_total",
			Help:      "Profile reads served from the store without recomputation.",
		}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_computations_total",
			Help:      "Profile computations by outcome.",
		}, []string{"outcome"}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "profile_computation_seconds",
			Help:      "Wall time of one profile computation.",
			Buckets:   prometheus.DefBuckets,
		}),
		recalcTriggered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recalc_triggered_total",
			Help:      "Background recalculations triggered, by event kind.",
		}, []string{"kind"}),
		recalcSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recalc_skipped_total",
			Help:      "Events judged insignificant, by event kind.",
		}, []string{"kind"}),
		recalcFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recalc_failed_total",
			Help:      "Background recalculations that failed, by event kind.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status class.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(
		m.profileStoreHits, m.computations, m.computeDuration,
		m.recalcTriggered, m.recalcSkipped, m.recalcFailed,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// ProfileServedFromStore counts a read answered without recomputation.
func (m *Metrics) ProfileServedFromStore() {
	m.profileStoreHits.Inc()
}

// ProfileComputed records one computation and its duration.
func (m *Metrics) ProfileComputed(outcome string, elapsed time.Duration) {
	m.computations.WithLabelValues(outcome).Inc()
	m.computeDuration.Observe(elapsed.Seconds())
}

// RecalcTriggered counts a background recalculation being launched.
func (m *Metrics) RecalcTriggered(kind string) {
	m.recalcTriggered.WithLabelValues(kind).Inc()
}

// RecalcSkipped counts an event judged insignificant.
func (m *Metrics) RecalcSkipped(kind string) {
	m.recalcSkipped.WithLabelValues(kind).Inc()
}

// RecalcFailed counts a background recalculation that errored.
func (m *Metrics) RecalcFailed(kind string) {
	m.recalcFailed.WithLabelValues(kind).Inc()
}

// ObserveHTTP records one handled HTTP request.
func (m *Metrics) ObserveHTTP(route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, status).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
