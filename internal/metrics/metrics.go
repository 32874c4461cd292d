// Package metrics holds the Prometheus counters exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service counters and the registry they live in.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry           *prometheus.Registry
	registrations      *prometheus.CounterVec
	enrichmentFailures *prometheus.CounterVec
	duplicateScans     *prometheus.CounterVec
}

// New creates the counters on a fresh registry, along with Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration requests by outcome (created, rejected, enriched).",
		}, []string{"outcome"}),
		enrichmentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrichment_failures_total",
			Help: "Profile enrichment failures after a successful registration, by step.",
		}, []string{"op"}),
		duplicateScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "duplicate_scans_total",
			Help: "Duplicate scans by outcome (ok, truncated, failed).",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.registrations,
		m.enrichmentFailures,
		m.duplicateScans,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registration counts one registration outcome.
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// EnrichmentFailure counts one failed enrichment step.
func (m *Metrics) EnrichmentFailure(op string) {
	if m == nil {
		return
	}
	m.enrichmentFailures.WithLabelValues(op).Inc()
}

// DuplicateScan counts one duplicate scan outcome.
func (m *Metrics) DuplicateScan(outcome string) {
	if m == nil {
		return
	}
	m.duplicateScans.WithLabelValues(outcome).Inc()
}
