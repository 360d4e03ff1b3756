package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
)

// BalanceReconciler refreshes cached balances after a transfer. The transfer
// ack carries no balances, so every account matching an endpoint gets an
// independent balance query against the backend.
type BalanceReconciler struct {
	backend BackendClient
	store   LedgerStore
	errs    *ErrorLog
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewBalanceReconciler creates a BalanceReconciler. Metrics may be nil.
func NewBalanceReconciler(backend BackendClient, store LedgerStore, errs *ErrorLog, logger zerolog.Logger, m *metrics.Metrics) *BalanceReconciler {
	return &BalanceReconciler{
		backend: backend,
		store:   store,
		errs:    errs,
		logger:  logger,
		metrics: m,
	}
}

// Reconcile re-fetches the balance of every cached account whose id matches
// either endpoint. Each query's failure is logged individually and the rest
// of the matches still run, so after a server-side-successful transfer zero,
// one, or both balances may remain stale. No rollback, no retry.
func (r *BalanceReconciler) Reconcile(ctx context.Context, senderID, receiverID int64) {
	for _, user := range r.store.Users() {
		for _, account := range user.Accounts {
			if account.ID != senderID && account.ID != receiverID {
				continue
			}

			balance, err := r.backend.GetBalance(ctx, account.ID)
			if err != nil {
				r.errs.Append("Unable to refresh funds", err)
				r.logger.Warn().
					Err(err).
					Int64("account_id", account.ID).
					Msg("balance refresh failed")
				if r.metrics != nil {
					r.metrics.ReconcileFailures.Inc()
				}
				continue
			}

			r.store.SetAccountBalance(account.ID, balance)
		}
	}
}
