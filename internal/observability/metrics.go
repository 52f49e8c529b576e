package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation outcomes recorded by EvaluationsTotal.
const (
	OutcomeParsed        = "parsed"
	OutcomeFallback      = "fallback"
	OutcomeRejected      = "rejected"
	OutcomeUpstreamError = "upstream_error"
	OutcomeError         = "error"
)

var (
	registerOnce        sync.Once
	evaluationsTotal    *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	upstreamTokensTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors on the default registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptcheck_evaluations_total",
			Help: "Evaluation requests by strategy and outcome.",
		}, []string{"strategy", "outcome"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptcheck_http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "promptcheck_http_latency_seconds",
			Help:    "Latency distribution of HTTP requests.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"})

		upstreamTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptcheck_upstream_tokens_total",
			Help: "Tokens consumed by upstream model calls.",
		}, []string{"model", "direction"})

		prometheus.MustRegister(evaluationsTotal, httpRequestsTotal, httpLatencySeconds, upstreamTokensTotal)
	})
}

// EvaluationsTotal exposes the evaluation outcome counter.
func EvaluationsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// HTTPRequests exposes the HTTP request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the HTTP latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// UpstreamTokens exposes the token counter; direction is "input" or "output".
func UpstreamTokens() *prometheus.CounterVec {
	RegisterMetrics()
	return upstreamTokensTotal
}
