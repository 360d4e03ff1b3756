// Package memory holds the session-scoped mirror of the backend's users and
// accounts. Nothing here survives a restart; the backend stays authoritative
// and the mirror is rebuilt from it on demand.
package memory

import (
	"sync"

	"github.com/jakeadel/bank-demo/internal/domain"
)

// LedgerStore is a mutex-guarded in-memory view of users and their accounts.
// Lookups and merges are linear scans, which is fine at admin-tool
// cardinality.
type LedgerStore struct {
	mu    sync.Mutex
	users []*domain.User
}

// NewLedgerStore creates an empty LedgerStore.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

// Replace installs a full user list, typically the initial GET /users load.
func (s *LedgerStore) Replace(users []*domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]*domain.User, 0, len(users))
	for _, u := range users {
		cp := *u
		cp.Accounts = append([]domain.Account(nil), u.Accounts...)
		s.users = append(s.users, &cp)
	}
}

// AddUser appends a user to the mirror.
func (s *LedgerStore) AddUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *user
	cp.Accounts = append([]domain.Account(nil), user.Accounts...)
	s.users = append(s.users, &cp)
}

// AddAccount appends an account to the owning user's list, creating the
// list when absent. An account whose owner is not in the mirror is dropped;
// the return value reports whether the merge landed.
func (s *LedgerStore) AddAccount(userID int64, account domain.Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == userID {
			u.Accounts = append(u.Accounts, account)
			return true
		}
	}
	return false
}

// SetAccountBalance overwrites the balance of every account with the given
// id, scanning all users. Returns whether any account matched.
func (s *LedgerStore) SetAccountBalance(accountID, balance int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, u := range s.users {
		for i := range u.Accounts {
			if u.Accounts[i].ID == accountID {
				u.Accounts[i].Balance = balance
				found = true
			}
		}
	}
	return found
}

// Users returns a deep-copied snapshot so callers can read without holding
// the store lock.
func (s *LedgerStore) Users() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		cp.Accounts = append([]domain.Account(nil), u.Accounts...)
		out = append(out, &cp)
	}
	return out
}
