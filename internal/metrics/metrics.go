// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the repair desk server:
// HTTP traffic, request lifecycle counters and the per-status request gauge.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-repair-desk/models"
)

const namespace = "repair_desk"

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	requestsCreated    prometheus.Counter
	requestTransitions *prometheus.CounterVec
	requestsByStatus   *prometheus.GaugeVec
}

// New creates and registers every collector, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repair_requests_created_total",
			Help:      "Total number of registered repair requests.",
		}),
		requestTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repair_request_transitions_total",
			Help:      "Status changes of repair requests.",
		}, []string{"from", "to"}),
		requestsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "repair_requests_by_status",
			Help:      "Number of repair requests currently in each status.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.requestsCreated,
		m.requestTransitions,
		m.requestsByStatus,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RequestCreated counts a newly registered repair request.
func (m *Metrics) RequestCreated() {
	m.requestsCreated.Inc()
}

// StatusChanged counts a status transition.
func (m *Metrics) StatusChanged(from, to models.Status) {
	m.requestTransitions.WithLabelValues(statusLabel(from), statusLabel(to)).Inc()
}

// SetStatusCounts replaces the per-status gauge. Known statuses missing from
// counts are reported as zero.
func (m *Metrics) SetStatusCounts(counts []models.StatusCount) {
	m.requestsByStatus.Reset()
	for _, status := range models.Statuses() {
		m.requestsByStatus.WithLabelValues(string(status)).Set(0)
	}
	for _, c := range counts {
		m.requestsByStatus.WithLabelValues(statusLabel(c.Status)).Set(float64(c.TotalRequests))
	}
}

// HTTPStarted marks a request as in flight. The returned function records
// the outcome and must be called once the response is written.
func (m *Metrics) HTTPStarted(method string) func(route string, status int) {
	start := time.Now()
	m.httpInFlight.Inc()

	return func(route string, status int) {
		m.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// statusLabel keeps label cardinality bounded when rows hold free text.
func statusLabel(s models.Status) string {
	if s.IsKnown() {
		return string(s)
	}
	return "other"
}
