package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_statements_total",
			Help: "Statement delivery requests by terminal outcome",
		},
		[]string{"outcome"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_pipeline_stage_duration_seconds",
			Help:    "Duration of each delivery pipeline stage",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"stage"},
	)

	statementBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledger_statement_size_bytes",
			Help:    "Size of rendered statements",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
		},
	)

	eventPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_event_publish_errors_total",
			Help: "Total number of statement event publish errors",
		},
	)
)

func RecordOutcome(outcome string) {
	statementsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records the time elapsed since start against stage.
func ObserveStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func ObserveStatementSize(n int) {
	statementBytes.Observe(float64(n))
}

func RecordPublishError() {
	eventPublishErrors.Inc()
}
