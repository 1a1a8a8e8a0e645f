package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lender_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lender_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})

	// Ledger write outcomes. "conflict" covers both precondition clashes and
	// serialization aborts, matching the error taxonomy the API exposes.
	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lender_checkouts_total",
		Help: "Checkout attempts by outcome",
	}, []string{"outcome"})

	ReturnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lender_returns_total",
		Help: "Return attempts by outcome",
	}, []string{"outcome"})
)

const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)
