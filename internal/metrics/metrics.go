// Conveyor - Logistics Demo ERP Gateway
// Copyright 2026 Conveyor Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/conveyor-labs/conveyor

// Package metrics defines the gateway's Prometheus instrumentation:
// inbound HTTP latency and throughput, upstream ERP call outcomes,
// circuit breaker state, authentication failures, and registry
// heartbeats. All collectors are registered at init via promauto and
// exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conveyor_http_request_duration_seconds",
			Help:    "Duration of inbound HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_http_requests_total",
			Help: "Total number of inbound HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Upstream ERP Metrics
	ERPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "conveyor_erp_request_duration_seconds",
			Help:    "Duration of upstream ERP calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	ERPRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_erp_request_errors_total",
			Help: "Total number of upstream ERP call failures by error kind",
		},
		[]string{"operation", "kind"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "conveyor_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// Auth Metrics
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_auth_failures_total",
			Help: "Total number of rejected authentications by reason",
		},
		[]string{"reason"}, // "missing_token", "invalid_token", "forbidden"
	)

	SessionsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_sessions_issued_total",
			Help: "Total number of session envelopes issued",
		},
		[]string{"kind"}, // "login", "demo", "reset"
	)

	// Registry Metrics
	RegistryHeartbeats = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conveyor_registry_heartbeats_total",
			Help: "Total number of service registry heartbeats by outcome",
		},
		[]string{"outcome"}, // "ok", "gone", "error"
	)
)

// RecordHTTPRequest records one completed inbound request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}

// RecordERPRequest records one completed upstream call.
func RecordERPRequest(operation string, status int, duration time.Duration) {
	ERPRequestDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(duration.Seconds())
}
