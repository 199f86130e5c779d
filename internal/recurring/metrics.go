package recurring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = []prometheus.Collector{
	generatedTransactions,
	catchupRuns,
	catchupFailures,
}

var generatedTransactions = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_generated_transactions_total",
		Help: "How many transactions were materialized from recurring transactions.",
	},
)

var catchupRuns = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_catchup_runs_total",
		Help: "How many catch-up runs were started.",
	},
)

var catchupFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "recurring_catchup_failures_total",
		Help: "How many recurring transactions failed during catch-up runs.",
	},
)

// RegisterMetrics registers all Prometheus metrics of this package
// with the default registry.
func RegisterMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterMetrics unregisters all Prometheus metrics of this package.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}
