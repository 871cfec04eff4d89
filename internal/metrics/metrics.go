// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "apacheta_"

// Outcome labels for settlement calculations.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	rpcRequests  *prometheus.CounterVec
	rpcLatency   *prometheus.HistogramVec
	calculations *prometheus.CounterVec
	transfers    prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rpc_requests_total",
				Help: "Total RPC requests by procedure and code",
			},
			[]string{"procedure", "code"},
		),
		rpcLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "rpc_latency_seconds",
				Help:    "RPC latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_calculations_total",
				Help: "Total settlement calculations by outcome",
			},
			[]string{"outcome"},
		),
		transfers: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "settlement_transfers",
				Help:    "Number of transfers produced per calculation",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
	}
	reg.MustRegister(m.rpcRequests, m.rpcLatency, m.calculations, m.transfers)
	return m
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcLatency.WithLabelValues(procedure).Observe(seconds)
}

// ObserveCalculation records a settlement calculation and, on success, how
// many transfers it produced.
func (m *Metrics) ObserveCalculation(outcome string, transfers int) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.transfers.Observe(float64(transfers))
	}
}
