// Package invalidation notifies open views that an account's cached data is
// out of date. Subscriptions are keyed by account id so a mutation only
// reaches observers of the accounts it touched.
package invalidation

import (
	"sync"

	"github.com/rs/zerolog"
)

// Bus fans out account invalidations to subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[int64]map[*Subscription]struct{}
	logger zerolog.Logger
}

// Subscription is one registered observer of one account.
type Subscription struct {
	bus       *Bus
	accountID int64
	fn        func(accountID int64)
}

// NewBus creates an empty Bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subs:   make(map[int64]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers fn to run whenever accountID is invalidated. The
// callback runs on its own goroutine per delivery.
func (b *Bus) Subscribe(accountID int64, fn func(accountID int64)) *Subscription {
	sub := &Subscription{bus: b, accountID: accountID, fn: fn}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[accountID] == nil {
		b.subs[accountID] = make(map[*Subscription]struct{})
	}
	b.subs[accountID][sub] = struct{}{}
	return sub
}

// Cancel removes the subscription. Deliveries already in flight may still
// invoke the callback; callers guard against that on their side.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if set, ok := s.bus.subs[s.accountID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.bus.subs, s.accountID)
		}
	}
}

// Publish invalidates the given accounts, notifying each subscriber
// asynchronously.
func (b *Bus) Publish(accountIDs ...int64) {
	b.mu.Lock()
	var targets []*Subscription
	for _, id := range accountIDs {
		for sub := range b.subs[id] {
			targets = append(targets, sub)
		}
	}
	b.mu.Unlock()

	b.logger.Debug().
		Ints64("account_ids", accountIDs).
		Int("subscribers", len(targets)).
		Msg("publishing invalidation")

	for _, sub := range targets {
		go sub.fn(sub.accountID)
	}
}
