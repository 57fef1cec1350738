// Package metrics owns the Prometheus collectors exported at /metrics.
// Every recording method is safe to call on a nil *Metrics, so packages that
// record metrics never need to know whether metrics are enabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripcrew"

// Code lookup outcomes recorded by CodeLookup.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

// Metrics groups the application collectors and the registry they live in.
type Metrics struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	writeConflicts *prometheus.CounterVec
	writeExhausted *prometheus.CounterVec
	codeLookups    *prometheus.CounterVec
	mirrorFailures *prometheus.CounterVec
}

// New builds the collectors on a fresh registry, together with the standard
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		writeConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_conflicts_total",
			Help:      "Trip writes retried after losing an optimistic version check.",
		}, []string{"operation"}),
		writeExhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_conflicts_exhausted_total",
			Help:      "Trip writes that gave up after the maximum number of attempts.",
		}, []string{"operation"}),
		codeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "join_code_lookups_total",
			Help:      "Join-code cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		mirrorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "membership_mirror_failures_total",
			Help:      "Failed writes to the user membership mirror.",
		}, []string{"operation"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.writeConflicts,
		m.writeExhausted,
		m.codeLookups,
		m.mirrorFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// WriteConflict records one lost version check for operation.
func (m *Metrics) WriteConflict(operation string) {
	if m == nil {
		return
	}
	m.writeConflicts.WithLabelValues(operation).Inc()
}

// WriteExhausted records an operation that ran out of retry attempts.
func (m *Metrics) WriteExhausted(operation string) {
	if m == nil {
		return
	}
	m.writeExhausted.WithLabelValues(operation).Inc()
}

// CodeLookup records a join-code cache lookup outcome.
func (m *Metrics) CodeLookup(result string) {
	if m == nil {
		return
	}
	m.codeLookups.WithLabelValues(result).Inc()
}

// MirrorFailure records a failed membership mirror write.
func (m *Metrics) MirrorFailure(operation string) {
	if m == nil {
		return
	}
	m.mirrorFailures.WithLabelValues(operation).Inc()
}
