// Package metrics owns the dashboard's Prometheus collectors.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oauthflow"

// Registry groups the dashboard collectors behind one registerer.
type Registry struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	probeOutcomes *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	probeDiscards *prometheus.CounterVec
	dataFetches   *prometheus.CounterVec
}

// New builds a registry with the process and Go collectors attached.
func New() (*Registry, error) {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the dashboard.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests served by the dashboard.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		probeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_probe_total",
			Help:      "Session probes by consuming surface and resolved outcome.",
		}, []string{"consumer", "outcome"}),
		probeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_probe_duration_seconds",
			Help:      "Round-trip time of session probes.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"consumer"}),
		probeDiscards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_probe_discarded_total",
			Help:      "Probe results dropped because their surface unmounted first.",
		}, []string{"consumer"}),
		dataFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_fetch_total",
			Help:      "Opaque data endpoint fetches by endpoint and result.",
		}, []string{"endpoint", "result"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.probeOutcomes,
		r.probeDuration,
		r.probeDiscards,
		r.dataFetches,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying gatherer for tests and embedding.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// ObserveHTTP records one served request.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveProbe records one resolved session probe.
func (r *Registry) ObserveProbe(consumer, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.probeOutcomes.WithLabelValues(consumer, outcome).Inc()
	r.probeDuration.WithLabelValues(consumer).Observe(elapsed.Seconds())
}

// ObserveDiscard records a probe result dropped after unmount.
func (r *Registry) ObserveDiscard(consumer string) {
	if r == nil {
		return
	}
	r.probeDiscards.WithLabelValues(consumer).Inc()
}

// ObserveDataFetch records one data endpoint fetch.
func (r *Registry) ObserveDataFetch(endpoint string, ok bool) {
	if r == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	r.dataFetches.WithLabelValues(endpoint, result).Inc()
}
