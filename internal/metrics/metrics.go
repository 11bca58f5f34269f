// Package metrics holds the Prometheus collectors. All collectors register
// with the default registry through promauto and are exposed by /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	ExpensesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_expenses_recorded_total",
			Help: "Total number of expenses recorded by scope",
		},
		[]string{"scope"}, // group, one_to_one
	)

	SettlementsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_settlements_recorded_total",
			Help: "Total number of settlements recorded by scope",
		},
		[]string{"scope"},
	)

	LedgerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_ledger_errors_total",
			Help: "Total number of failed ledger operations by operation and error kind",
		},
		[]string{"operation", "kind"},
	)

	BalanceCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_balance_cache_total",
			Help: "Balance cache lookups by scope and result",
		},
		[]string{"scope", "result"}, // hit, miss, error, stale
	)

	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_rpc_requests_total",
			Help: "Total number of RPCs by procedure and code",
		},
		[]string{"procedure", "code"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitledger_rpc_duration_seconds",
			Help:    "RPC latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	InsightResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitledger_insight_results_total",
			Help: "Monthly insight results by outcome",
		},
		[]string{"outcome"}, // sent, failed
	)
)

// Scope labels a record as group or one-to-one.
func Scope(groupID string) string {
	if groupID == "" {
		return "one_to_one"
	}
	return "group"
}

// ErrorKind labels an error by its taxonomy kind.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return "validation"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrForbidden):
		return "forbidden"
	case errors.Is(err, models.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "internal"
	}
}
