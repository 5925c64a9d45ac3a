// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medrequest_transitions_total",
		Help: "Lifecycle transitions by action and outcome",
	}, []string{"action", "outcome"})

	PaymentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medrequest_payments_created_total",
		Help: "Payments created by method and status",
	}, []string{"method", "status"})

	Webhooks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medrequest_webhooks_total",
		Help: "Payment webhooks by outcome",
	}, []string{"outcome"})

	AuditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medrequest_audit_failures_total",
		Help: "Audit entries that could not be written",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medrequest_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "medrequest_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "route"})
)

const (
	OutcomeApplied   = "applied"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeNoop      = "noop"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
	OutcomeTerminal  = "terminal"
)
