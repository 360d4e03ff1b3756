package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jakeadel/bank-demo/internal/adapter/repository/memory"
	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/usecase"
	"github.com/jakeadel/bank-demo/internal/usecase/mocks"
)

// recordingInvalidator captures published account ids.
type recordingInvalidator struct {
	mu        sync.Mutex
	published [][]int64
}

func (r *recordingInvalidator) Publish(accountIDs ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, accountIDs)
}

func newCoordinator(backend *mocks.MockBackendClient) (*usecase.Coordinator, *memory.LedgerStore, *usecase.ErrorLog, *recordingInvalidator) {
	store := memory.NewLedgerStore()
	errs := usecase.NewErrorLog(nil)
	bus := &recordingInvalidator{}
	reconciler := usecase.NewBalanceReconciler(backend, store, errs, zerolog.Nop(), nil)
	coord := usecase.NewCoordinator(backend, store, reconciler, bus, errs, zerolog.Nop(), nil)
	return coord, store, errs, bus
}

func TestCreateUser(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateUserFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{ID: 7, Username: username, Accounts: []domain.Account{}}, nil
	}
	coord, store, errs, _ := newCoordinator(backend)

	user, err := coord.CreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected user_id 7, got %d", user.ID)
	}

	users := store.Users()
	if len(users) != 1 || users[0].ID != 7 || users[0].Username != "alice" {
		t.Fatalf("unexpected store contents %+v", users)
	}
	if len(users[0].Accounts) != 0 {
		t.Errorf("new user must start with no accounts, got %d", len(users[0].Accounts))
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected error log %v", errs.Entries())
	}
}

func TestCreateUserBackendRejection(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateUserFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, errors.New("400 Bad Request")
	}
	coord, store, errs, _ := newCoordinator(backend)

	if _, err := coord.CreateUser(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}

	if len(store.Users()) != 0 {
		t.Error("no user may be inserted on failure")
	}
	if got := errs.Entries(); len(got) != 1 || got[0] != "Error adding user, 400 Bad Request" {
		t.Errorf("unexpected error log %v", got)
	}
}

func TestCreateAccount(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateAccountFunc = func(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
		if balance != 5000 {
			t.Errorf("expected balance transmitted as 5000 minor units, got %d", balance)
		}
		return &domain.Account{ID: 3, Name: name, Balance: balance}, nil
	}
	coord, store, errs, _ := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 7, Username: "alice"})

	account, err := coord.CreateAccount(context.Background(), 7, "50.00", "Checking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 3 {
		t.Errorf("expected account_id 3, got %d", account.ID)
	}

	accounts := store.Users()[0].Accounts
	if len(accounts) != 1 {
		t.Fatalf("expected 1 account under user 7, got %d", len(accounts))
	}
	want := domain.Account{ID: 3, Name: "Checking", Balance: 5000}
	if accounts[0] != want {
		t.Errorf("account = %+v, want %+v", accounts[0], want)
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected error log %v", errs.Entries())
	}
}

func TestCreateAccountInvalidBalance(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateAccountFunc = func(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
		t.Fatal("backend must not be called for an unparseable balance")
		return nil, nil
	}
	coord, store, errs, _ := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 7, Username: "alice"})

	_, err := coord.CreateAccount(context.Background(), 7, "fifty", "Checking")
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if errs.Len() != 1 {
		t.Errorf("expected one logged failure, got %v", errs.Entries())
	}
	if len(store.Users()[0].Accounts) != 0 {
		t.Error("no account may be inserted on failure")
	}
}

func TestCreateAccountBackendRejection(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateAccountFunc = func(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
		return nil, errors.New("404 Not Found")
	}
	coord, store, errs, _ := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 7, Username: "alice"})

	if _, err := coord.CreateAccount(context.Background(), 7, "50.00", "Checking"); err == nil {
		t.Fatal("expected error")
	}
	if len(store.Users()[0].Accounts) != 0 {
		t.Error("no account may be inserted on failure")
	}
	if got := errs.Entries(); len(got) != 1 || got[0] != "Error adding account, 404 Not Found" {
		t.Errorf("unexpected error log %v", got)
	}
}

func TestCreateAccountUnknownOwnerDropped(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.CreateAccountFunc = func(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
		return &domain.Account{ID: 9, Name: name, Balance: balance}, nil
	}

	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)

	store := memory.NewLedgerStore()
	errs := usecase.NewErrorLog(nil)
	bus := &recordingInvalidator{}
	reconciler := usecase.NewBalanceReconciler(backend, store, errs, zerolog.Nop(), nil)
	coord := usecase.NewCoordinator(backend, store, reconciler, bus, errs, logger, nil)

	// The backend accepted the account, so the operation succeeds even
	// though the owner is not in the mirror.
	account, err := coord.CreateAccount(context.Background(), 42, "10.00", "Savings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 9 {
		t.Errorf("expected account_id 9, got %d", account.ID)
	}

	if len(store.Users()) != 0 {
		t.Error("account must not be merged without its owner")
	}
	if errs.Len() != 0 {
		t.Errorf("drop is not an operator-visible failure, got %v", errs.Entries())
	}
	if !strings.Contains(logs.String(), domain.ErrUserNotFound.Error()) {
		t.Errorf("expected %q marker in debug log, got %q", domain.ErrUserNotFound, logs.String())
	}
}

func TestTransferFunds(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	var refreshed []int64
	backend.GetBalanceFunc = func(ctx context.Context, accountID int64) (int64, error) {
		refreshed = append(refreshed, accountID)
		if accountID == 3 {
			return 2500, nil
		}
		return 7500, nil
	}
	coord, store, errs, bus := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 1, Username: "alice"})
	store.AddUser(&domain.User{ID: 2, Username: "bob"})
	store.AddAccount(1, domain.Account{ID: 3, Balance: 5000})
	store.AddAccount(2, domain.Account{ID: 4, Balance: 5000})

	if err := coord.TransferFunds(context.Background(), 3, 4, "25.00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both endpoints get independent refresh calls even though the
	// coordinator never computes the new balances itself.
	if len(refreshed) != 2 {
		t.Fatalf("expected 2 balance refreshes, got %v", refreshed)
	}

	users := store.Users()
	if got := users[0].Accounts[0].Balance; got != 2500 {
		t.Errorf("sender balance = %d, want 2500", got)
	}
	if got := users[1].Accounts[0].Balance; got != 7500 {
		t.Errorf("receiver balance = %d, want 7500", got)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one invalidation publish, got %d", len(bus.published))
	}
	if ids := bus.published[0]; len(ids) != 2 || ids[0] != 3 || ids[1] != 4 {
		t.Errorf("unexpected published ids %v", ids)
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected error log %v", errs.Entries())
	}
}

func TestTransferFundsBackendRejection(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.TransferFundsFunc = func(ctx context.Context, senderID, receiverID, amount int64) error {
		return errors.New("422 Unprocessable Entity")
	}
	backend.GetBalanceFunc = func(ctx context.Context, accountID int64) (int64, error) {
		t.Fatal("no reconciliation after a rejected transfer")
		return 0, nil
	}
	coord, store, errs, bus := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 1, Username: "alice"})
	store.AddAccount(1, domain.Account{ID: 3, Balance: 5000})

	if err := coord.TransferFunds(context.Background(), 3, 4, "25.00"); err == nil {
		t.Fatal("expected error")
	}

	if got := store.Users()[0].Accounts[0].Balance; got != 5000 {
		t.Errorf("balance changed after rejected transfer: %d", got)
	}
	if len(bus.published) != 0 {
		t.Error("no invalidation may be published for a rejected transfer")
	}
	if got := errs.Entries(); len(got) != 1 || got[0] != "Error transferring funds, 422 Unprocessable Entity" {
		t.Errorf("unexpected error log %v", got)
	}
}

// The invalidation still goes out when reconciliation fails: the transfer
// itself already succeeded server-side.
func TestTransferFundsPublishesDespiteFailedReconcile(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.GetBalanceFunc = func(ctx context.Context, accountID int64) (int64, error) {
		return 0, errors.New("503 Service Unavailable")
	}
	coord, store, errs, bus := newCoordinator(backend)
	store.AddUser(&domain.User{ID: 1, Username: "alice"})
	store.AddAccount(1, domain.Account{ID: 3, Balance: 5000})
	store.AddAccount(1, domain.Account{ID: 4, Balance: 5000})

	if err := coord.TransferFunds(context.Background(), 3, 4, "25.00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.published) != 1 {
		t.Error("invalidation must be published regardless of reconciliation outcome")
	}
	if errs.Len() != 2 {
		t.Errorf("expected one logged failure per endpoint, got %v", errs.Entries())
	}
}

func TestLoadUsers(t *testing.T) {
	backend := mocks.NewMockBackendClient()
	backend.ListUsersFunc = func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{
			{ID: 1, Username: "alice", Accounts: []domain.Account{{ID: 3, Balance: 5000}}},
			{ID: 2, Username: "bob"},
		}, nil
	}
	coord, store, _, _ := newCoordinator(backend)

	if err := coord.LoadUsers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(store.Users()); got != 2 {
		t.Fatalf("expected 2 users, got %d", got)
	}
}
