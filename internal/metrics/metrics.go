// Package metrics holds the Prometheus instrumentation shared by the EMD
// kernels, the classifier and the CLI. Every collector is registered on the
// default registry at init time.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/pillars/matrix"
)

var (
	// EMDEvaluationsTotal counts single EMD evaluations by execution mode
	EMDEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillars_emd_evaluations_total",
			Help: "Total number of EMD evaluations (one per reference)",
		},
		[]string{"mode"},
	)

	// InputErrorsTotal counts rejected inputs by error kind
	InputErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillars_input_errors_total",
			Help: "Total number of failed operations by error kind",
		},
		[]string{"kind"},
	)

	// OperationDurationSeconds measures the latency of top-level operations
	OperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pillars_operation_duration_seconds",
			Help:    "Duration of EMD and classification operations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
		[]string{"operation"},
	)

	// QueriesTotal counts classified queries
	QueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pillars_classify_queries_total",
			Help: "Total number of classified queries",
		},
	)

	// LogEntriesTotal counts log entries by level
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pillars_log_entries_total",
			Help: "Total number of log entries by level",
		},
		[]string{"level"},
	)
)

// ObserveOperation records the elapsed time of operation since start and, for
// a non-nil err, bumps InputErrorsTotal under matrix.Kind(err).
func ObserveOperation(operation string, start time.Time, err error) {
	OperationDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		InputErrorsTotal.WithLabelValues(matrix.Kind(err)).Inc()
	}
}
