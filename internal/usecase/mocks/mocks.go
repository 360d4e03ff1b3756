package mocks

import (
	"context"
	"sync"

	"github.com/jakeadel/bank-demo/internal/domain"
)

// MockBackendClient is a mock implementation of usecase.BackendClient.
// Unset Func fields fall back to a small in-memory backend that assigns
// sequential ids.
type MockBackendClient struct {
	mu         sync.Mutex
	nextUserID int64
	nextAcctID int64
	balances   map[int64]int64
	histories  map[int64][]domain.Transfer

	CreateUserFunc         func(ctx context.Context, username string) (*domain.User, error)
	CreateAccountFunc      func(ctx context.Context, userID, balance int64, name string) (*domain.Account, error)
	TransferFundsFunc      func(ctx context.Context, senderID, receiverID, amount int64) error
	GetBalanceFunc         func(ctx context.Context, accountID int64) (int64, error)
	GetTransferHistoryFunc func(ctx context.Context, accountID int64) ([]domain.Transfer, error)
	ListUsersFunc          func(ctx context.Context) ([]*domain.User, error)
}

func NewMockBackendClient() *MockBackendClient {
	return &MockBackendClient{
		balances:  make(map[int64]int64),
		histories: make(map[int64][]domain.Transfer),
	}
}

// SetBalance seeds the fallback backend's balance for an account.
func (m *MockBackendClient) SetBalance(accountID, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[accountID] = balance
}

// SetHistory seeds the fallback backend's transfer history for an account.
func (m *MockBackendClient) SetHistory(accountID int64, transfers []domain.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histories[accountID] = transfers
}

func (m *MockBackendClient) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	return &domain.User{ID: m.nextUserID, Username: username, Accounts: []domain.Account{}}, nil
}

func (m *MockBackendClient) CreateAccount(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, userID, balance, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAcctID++
	m.balances[m.nextAcctID] = balance
	return &domain.Account{ID: m.nextAcctID, Name: name, Balance: balance}, nil
}

func (m *MockBackendClient) TransferFunds(ctx context.Context, senderID, receiverID, amount int64) error {
	if m.TransferFundsFunc != nil {
		return m.TransferFundsFunc(ctx, senderID, receiverID, amount)
	}
	return nil
}

func (m *MockBackendClient) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if balance, ok := m.balances[accountID]; ok {
		return balance, nil
	}
	return 0, domain.ErrAccountNotFound
}

func (m *MockBackendClient) GetTransferHistory(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
	if m.GetTransferHistoryFunc != nil {
		return m.GetTransferHistoryFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Transfer(nil), m.histories[accountID]...), nil
}

func (m *MockBackendClient) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []*domain.User{}, nil
}
