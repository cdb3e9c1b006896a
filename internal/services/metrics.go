package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerEntriesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swingold_ledger_entries_recorded_total",
		Help: "Ledger entries committed, by trade type and direction.",
	}, []string{"trade_type", "direction"})

	ledgerRecordFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swingold_ledger_record_failures_total",
		Help: "Recorder calls that were rolled back, by operation and error kind.",
	}, []string{"operation", "reason"})

	chainSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swingold_chain_sync_total",
		Help: "Reconciliation attempts, by outcome.",
	}, []string{"outcome"})

	chainRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swingold_chain_request_duration_seconds",
		Help:    "Latency of blockchain client calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call"})
)

// errorReason is a bounded label value for err.
func errorReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateTxHash):
		return "duplicate_tx_hash"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrRecipientNotFound):
		return "recipient_not_found"
	case errors.Is(err, ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, ErrChainUnavailable):
		return "chain_unavailable"
	case errors.Is(err, ErrUnknownTxHash):
		return "unknown_tx_hash"
	case errors.Is(err, ErrStore):
		return "store"
	default:
		return "other"
	}
}
