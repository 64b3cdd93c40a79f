// Package metrics exposes Prometheus collectors for evaluation traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Simplici0/toolcost/internal/consumption"
)

var (
	evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolcost_evaluations_total",
			Help: "Total number of evaluation requests, by entry point",
		},
		[]string{"source"},
	)

	toolsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolcost_tools_evaluated_total",
			Help: "Total number of tool consumptions computed, by tool kind",
		},
		[]string{"kind"},
	)

	toolsPerEvaluation = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "toolcost_tools_per_evaluation",
			Help:    "Number of tools compared in one evaluation",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toolcost_active_sessions",
			Help: "Number of in-memory sessions holding a tool list",
		},
	)
)

// ObserveEvaluation records one evaluation coming from source ("web", "api", "cli").
func ObserveEvaluation(source string, results []consumption.Result) {
	evaluations.WithLabelValues(source).Inc()
	toolsPerEvaluation.Observe(float64(len(results)))
	for _, r := range results {
		toolsEvaluated.WithLabelValues(string(r.Kind)).Inc()
	}
}

// SetActiveSessions publishes the current session count.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
