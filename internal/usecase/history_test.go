package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/infrastructure/invalidation"
	"github.com/jakeadel/bank-demo/internal/usecase"
	"github.com/jakeadel/bank-demo/internal/usecase/mocks"
)

func newHistoryCache(backend *mocks.MockBackendClient) (*usecase.HistoryCache, *invalidation.Bus, *usecase.ErrorLog) {
	bus := invalidation.NewBus(zerolog.Nop())
	errs := usecase.NewErrorLog(nil)
	cache := usecase.NewHistoryCache(backend, bus, errs, zerolog.Nop(), nil)
	return cache, bus, errs
}

func someTransfers(n int) []domain.Transfer {
	out := make([]domain.Transfer, n)
	for i := range out {
		out[i] = domain.Transfer{
			ID: int64(i + 1), SenderID: 3, ReceiverID: 4,
			Amount: 2500, ResultingBalance: 2500,
			Role: domain.RoleSender, Time: "2024-01-02 15:04:05",
		}
	}
	return out
}

func TestToggleOpensAndFetches(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.SetHistory(3, someTransfers(2))
	cache, _, errs := newHistoryCache(backend)

	open, err := cache.Toggle(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open {
		t.Fatal("expected view to open")
	}

	transfers, open := cache.Transfers(3)
	if !open || len(transfers) != 2 {
		t.Fatalf("expected 2 cached transfers in an open view, got open=%v n=%d", open, len(transfers))
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected error log %v", errs.Entries())
	}
}

func TestToggleFetchFailureStaysClosed(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		return nil, errors.New("404 Not Found")
	}
	cache, _, errs := newHistoryCache(backend)

	open, err := cache.Toggle(context.Background(), 3)
	if err == nil {
		t.Fatal("expected error")
	}
	if open {
		t.Fatal("view must stay closed on a failed fetch")
	}
	if got := errs.Entries(); len(got) != 1 || got[0] != "Unable to get transfers, 404 Not Found" {
		t.Errorf("unexpected error log %v", got)
	}
}

// Open, close, open again: two fetches, and nothing served from the
// discarded copy in between.
func TestReopenRefetches(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	var fetches atomic.Int64
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		fetches.Add(1)
		return someTransfers(int(fetches.Load())), nil
	}
	cache, _, _ := newHistoryCache(backend)
	ctx := context.Background()

	if open, _ := cache.Toggle(ctx, 3); !open {
		t.Fatal("expected open")
	}
	if open, _ := cache.Toggle(ctx, 3); open {
		t.Fatal("expected closed")
	}
	if _, open := cache.Transfers(3); open {
		t.Fatal("closed view must retain no data")
	}
	if open, _ := cache.Toggle(ctx, 3); !open {
		t.Fatal("expected open")
	}

	if got := fetches.Load(); got != 2 {
		t.Errorf("expected exactly 2 fetches, got %d", got)
	}
	transfers, _ := cache.Transfers(3)
	if len(transfers) != 2 {
		t.Errorf("reopened view must show the fresh fetch, got %d transfers", len(transfers))
	}
}

func TestCloseIsLocal(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	var fetches atomic.Int64
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		fetches.Add(1)
		return someTransfers(1), nil
	}
	cache, _, _ := newHistoryCache(backend)

	cache.Toggle(context.Background(), 3)
	before := fetches.Load()
	cache.Toggle(context.Background(), 3)

	if fetches.Load() != before {
		t.Error("closing a view must not issue a network call")
	}
}

func TestRefreshKeepsStaleRecordsOnFailure(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.SetHistory(3, someTransfers(2))
	cache, _, errs := newHistoryCache(backend)
	ctx := context.Background()

	cache.Toggle(ctx, 3)

	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		return nil, errors.New("503 Service Unavailable")
	}
	cache.Refresh(ctx, 3)

	transfers, open := cache.Transfers(3)
	if !open {
		t.Fatal("a failed refresh must not change visibility")
	}
	if len(transfers) != 2 {
		t.Errorf("previously displayed records must survive a failed refresh, got %d", len(transfers))
	}
	if errs.Len() != 1 {
		t.Errorf("expected one logged failure, got %v", errs.Entries())
	}
}

func TestRefreshIgnoresClosedViews(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	var fetches atomic.Int64
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		fetches.Add(1)
		return someTransfers(1), nil
	}
	cache, _, _ := newHistoryCache(backend)

	cache.Refresh(context.Background(), 3)
	if fetches.Load() != 0 {
		t.Error("refreshing a closed view must not fetch")
	}
}

// A refresh that started against a view generation that has since been
// dismissed must not overwrite the records of a later incarnation.
func TestLateRefreshDoesNotClobberReopenedView(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.SetHistory(3, someTransfers(1))
	cache, _, _ := newHistoryCache(backend)
	ctx := context.Background()

	cache.Toggle(ctx, 3)

	release := make(chan struct{})
	started := make(chan struct{})
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		close(started)
		<-release
		return someTransfers(5), nil // stale payload from the old incarnation
	}

	done := make(chan struct{})
	go func() {
		cache.Refresh(ctx, 3)
		close(done)
	}()
	<-started

	// Dismiss and reopen the view while the refresh is in flight.
	backend.GetTransferHistoryFunc = nil
	backend.SetHistory(3, someTransfers(2))
	cache.Toggle(ctx, 3)
	cache.Toggle(ctx, 3)

	close(release)
	<-done

	transfers, open := cache.Transfers(3)
	if !open {
		t.Fatal("expected reopened view")
	}
	if len(transfers) != 2 {
		t.Errorf("late refresh overwrote the reopened view: got %d transfers, want 2", len(transfers))
	}
}

// End to end through the bus: a published invalidation refreshes the open
// view in the background.
func TestInvalidationTriggersBackgroundRefresh(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.SetHistory(3, someTransfers(1))
	cache, bus, _ := newHistoryCache(backend)

	if open, err := cache.Toggle(context.Background(), 3); err != nil || !open {
		t.Fatalf("toggle failed: open=%v err=%v", open, err)
	}

	backend.SetHistory(3, someTransfers(4))
	bus.Publish(3)

	require.Eventually(t, func() bool {
		transfers, open := cache.Transfers(3)
		return open && len(transfers) == 4
	}, time.Second, 10*time.Millisecond)
}

func TestInvalidationForOtherAccountDoesNotRefetch(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	var fetches atomic.Int64
	backend.GetTransferHistoryFunc = func(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
		fetches.Add(1)
		return someTransfers(1), nil
	}
	cache, bus, _ := newHistoryCache(backend)

	cache.Toggle(context.Background(), 3)
	bus.Publish(8, 9)

	time.Sleep(50 * time.Millisecond)
	if got := fetches.Load(); got != 1 {
		t.Errorf("view of an untouched account refetched: %d fetches", got)
	}
}
