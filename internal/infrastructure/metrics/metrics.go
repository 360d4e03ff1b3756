package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the console.
type Metrics struct {
	// Backend call metrics
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// Mutation metrics
	MutationsApplied  *prometheus.CounterVec
	MutationFailures  *prometheus.CounterVec
	ReconcileFailures prometheus.Counter

	// History view metrics
	HistoryRefreshes *prometheus.CounterVec
	OpenHistoryViews prometheus.Gauge

	// Error log metrics
	ErrorLogEntries prometheus.Counter
}

// New creates and registers all metrics against the given registerer.
// Tests pass a private prometheus.NewRegistry() so suites stay independent.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_backend_requests_total",
				Help: "Total backend calls by operation and outcome",
			},
			[]string{"call", "outcome"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_backend_request_duration_seconds",
				Help:    "Backend call duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"call"},
		),

		MutationsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_mutations_applied_total",
				Help: "Successful mutations merged into the local mirror",
			},
			[]string{"operation"},
		),
		MutationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_mutation_failures_total",
				Help: "Mutations that failed before any local state change",
			},
			[]string{"operation"},
		),
		ReconcileFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_reconcile_failures_total",
			Help: "Balance refreshes that failed after a successful transfer",
		}),

		HistoryRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_history_refreshes_total",
				Help: "Transfer history fetches by trigger",
			},
			[]string{"trigger"},
		),
		OpenHistoryViews: factory.NewGauge(prometheus.GaugeOpts{
			Name: "console_open_history_views",
			Help: "History views currently open",
		}),

		ErrorLogEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_error_log_entries_total",
			Help: "Entries appended to the operator error log",
		}),
	}
}
