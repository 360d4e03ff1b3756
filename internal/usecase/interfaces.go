package usecase

import (
	"context"

	"github.com/jakeadel/bank-demo/internal/domain"
)

// BackendClient is the console's view of the ledger backend. The backend is
// the only authority over balances; the console never computes a balance
// itself.
type BackendClient interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	CreateAccount(ctx context.Context, userID, balance int64, name string) (*domain.Account, error)
	TransferFunds(ctx context.Context, senderID, receiverID, amount int64) error
	GetBalance(ctx context.Context, accountID int64) (int64, error)
	GetTransferHistory(ctx context.Context, accountID int64) ([]domain.Transfer, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// LedgerStore is the session-scoped mirror of users and accounts.
type LedgerStore interface {
	Replace(users []*domain.User)
	AddUser(user *domain.User)
	AddAccount(userID int64, account domain.Account) bool
	SetAccountBalance(accountID, balance int64) bool
	Users() []*domain.User
}

// Invalidator publishes account invalidations after successful mutations.
type Invalidator interface {
	Publish(accountIDs ...int64)
}
