package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/infrastructure/invalidation"
	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
)

// HistoryCache holds per-account transfer-history views. A view is either
// Closed (no records held) or Open (records cached, subscribed to
// invalidations of its account). Opening fetches, closing discards, and a
// transfer touching the account triggers a background refetch while open.
type HistoryCache struct {
	mu    sync.Mutex
	views map[int64]*historyView

	backend BackendClient
	bus     *invalidation.Bus
	errs    *ErrorLog
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type historyView struct {
	open bool
	// gen increments on every toggle; a refetch result is dropped unless
	// the view is still open on the generation the fetch started under.
	// This keeps late responses from writing into a dismissed view.
	gen       uint64
	transfers []domain.Transfer
	sub       *invalidation.Subscription
}

// NewHistoryCache creates a HistoryCache. Metrics may be nil.
func NewHistoryCache(backend BackendClient, bus *invalidation.Bus, errs *ErrorLog, logger zerolog.Logger, m *metrics.Metrics) *HistoryCache {
	return &HistoryCache{
		views:   make(map[int64]*historyView),
		backend: backend,
		bus:     bus,
		errs:    errs,
		logger:  logger,
		metrics: m,
	}
}

// Toggle flips an account's view. Closed views fetch their history and open
// on success; a failed fetch is logged and the view stays Closed. Open views
// discard their records and close without a network call. The returned bool
// is the resulting state (true = open).
func (c *HistoryCache) Toggle(ctx context.Context, accountID int64) (bool, error) {
	c.mu.Lock()
	view := c.views[accountID]
	if view == nil {
		view = &historyView{}
		c.views[accountID] = view
	}

	if view.open {
		view.open = false
		view.gen++
		view.transfers = nil
		if view.sub != nil {
			view.sub.Cancel()
			view.sub = nil
		}
		c.mu.Unlock()

		if c.metrics != nil {
			c.metrics.OpenHistoryViews.Dec()
		}
		c.logger.Debug().Int64("account_id", accountID).Msg("history view closed")
		return false, nil
	}

	gen := view.gen
	c.mu.Unlock()

	transfers, err := c.backend.GetTransferHistory(ctx, accountID)
	if err != nil {
		c.errs.Append("Unable to get transfers", err)
		c.logger.Warn().Err(err).Int64("account_id", accountID).Msg("history fetch failed")
		return false, err
	}
	c.observeRefresh("toggle")

	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent toggle moved the view on; drop this result.
	if view.open || view.gen != gen {
		return view.open, nil
	}

	view.open = true
	view.gen++
	view.transfers = transfers
	view.sub = c.bus.Subscribe(accountID, func(id int64) {
		c.Refresh(context.Background(), id)
	})

	if c.metrics != nil {
		c.metrics.OpenHistoryViews.Inc()
	}
	c.logger.Debug().
		Int64("account_id", accountID).
		Int("transfers", len(transfers)).
		Msg("history view opened")
	return true, nil
}

// Refresh refetches an open view's history in place. A failed fetch is
// logged and the previously displayed records stay visible, stale but
// intact. Closed views are left alone.
func (c *HistoryCache) Refresh(ctx context.Context, accountID int64) {
	c.mu.Lock()
	view := c.views[accountID]
	if view == nil || !view.open {
		c.mu.Unlock()
		return
	}
	gen := view.gen
	c.mu.Unlock()

	transfers, err := c.backend.GetTransferHistory(ctx, accountID)
	if err != nil {
		c.errs.Append("Unable to get transfers", err)
		c.logger.Warn().Err(err).Int64("account_id", accountID).Msg("history refresh failed")
		return
	}
	c.observeRefresh("invalidation")

	c.mu.Lock()
	defer c.mu.Unlock()

	if view.open && view.gen == gen {
		view.transfers = transfers
	}
}

// Transfers returns the cached records for an account and whether its view
// is open. Closed views report no records.
func (c *HistoryCache) Transfers(accountID int64) ([]domain.Transfer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := c.views[accountID]
	if view == nil || !view.open {
		return nil, false
	}
	return append([]domain.Transfer(nil), view.transfers...), true
}

func (c *HistoryCache) observeRefresh(trigger string) {
	if c.metrics != nil {
		c.metrics.HistoryRefreshes.WithLabelValues(trigger).Inc()
	}
}
