// Package metrics collects and exposes Prometheus metrics for the
// trust-layer services.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records outcomes of outbound calls to the identity authority and
// the backing store. A nil *Collector is a no-op recorder so gateways can be
// constructed without metrics in tests.
type Collector struct {
	authorityCalls *prometheus.CounterVec
	storeCalls     *prometheus.CounterVec
	registry       *prometheus.Registry
}

// NewCollector creates a Collector and registers its metrics on a fresh
// registry.
func NewCollector(service string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		authorityCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "mailhub_authority_calls_total",
			Help:        "Identity authority verification calls by outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"outcome"}),
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "mailhub_store_calls_total",
			Help:        "Backing store calls by endpoint and outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"endpoint", "outcome"}),
		registry: registry,
	}

	registry.MustRegister(c.authorityCalls, c.storeCalls)
	return c
}

// RecordAuthorityCall counts a verification call with the given outcome
// (verified, rejected, transport_error).
func (c *Collector) RecordAuthorityCall(outcome string) {
	if c == nil {
		return
	}
	c.authorityCalls.WithLabelValues(outcome).Inc()
}

// RecordStoreCall counts a backing store call against an endpoint with the
// given outcome.
func (c *Collector) RecordStoreCall(endpoint, outcome string) {
	if c == nil {
		return
	}
	c.storeCalls.WithLabelValues(endpoint, outcome).Inc()
}

// Handler returns the /metrics endpoint handler for the collector's registry.
func (c *Collector) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
