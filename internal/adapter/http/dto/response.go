package dto

import (
	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/money"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses. Balance stays an
// integer in minor units; BalanceDisplay carries the formatted dollar string
// so clients never do float math on money.
type AccountResponse struct {
	ID             int64  `json:"account_id"`
	Name           string `json:"account_name"`
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		Balance:        a.Balance,
		BalanceDisplay: money.Format(a.Balance),
	}
}

// UserResponse represents a user with their accounts.
type UserResponse struct {
	ID       int64             `json:"user_id"`
	Username string            `json:"username"`
	Accounts []AccountResponse `json:"accounts"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) UserResponse {
	accounts := make([]AccountResponse, len(u.Accounts))
	for i, a := range u.Accounts {
		accounts[i] = AccountFromDomain(a)
	}
	return UserResponse{ID: u.ID, Username: u.Username, Accounts: accounts}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserFromDomain(u)
	}
	return out
}

// TransferResponse represents one transfer-history row.
type TransferResponse struct {
	ID                      int64       `json:"transfer_id"`
	SenderID                int64       `json:"sender_id"`
	ReceiverID              int64       `json:"receiver_id"`
	Amount                  int64       `json:"transfer_amount"`
	AmountDisplay           string      `json:"transfer_amount_display"`
	ResultingBalance        int64       `json:"resulting_balance"`
	ResultingBalanceDisplay string      `json:"resulting_balance_display"`
	Role                    domain.Role `json:"account_role"`
	Time                    string      `json:"transfer_time"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t domain.Transfer) TransferResponse {
	return TransferResponse{
		ID:                      t.ID,
		SenderID:                t.SenderID,
		ReceiverID:              t.ReceiverID,
		Amount:                  t.Amount,
		AmountDisplay:           money.Format(t.Amount),
		ResultingBalance:        t.ResultingBalance,
		ResultingBalanceDisplay: money.Format(t.ResultingBalance),
		Role:                    t.Role,
		Time:                    t.Time,
	}
}

// HistoryResponse represents an account's history view state.
type HistoryResponse struct {
	AccountID int64              `json:"account_id"`
	Open      bool               `json:"open"`
	Transfers []TransferResponse `json:"transfers"`
}

// HistoryFromDomain builds a HistoryResponse from cache contents.
func HistoryFromDomain(accountID int64, transfers []domain.Transfer, open bool) HistoryResponse {
	out := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = TransferFromDomain(t)
	}
	return HistoryResponse{AccountID: accountID, Open: open, Transfers: out}
}

// ErrorLogResponse is the full operator error log, oldest first.
type ErrorLogResponse struct {
	Errors []string `json:"errors"`
}
