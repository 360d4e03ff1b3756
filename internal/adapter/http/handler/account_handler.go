package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jakeadel/bank-demo/internal/adapter/http/dto"
	"github.com/jakeadel/bank-demo/internal/domain"
)

// AccountService defines the mutation behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, userID int64, balanceDecimal, name string) (*domain.Account, error)
}

// HistoryService defines the history-view behavior needed by AccountHandler.
type HistoryService interface {
	Toggle(ctx context.Context, accountID int64) (bool, error)
	Transfers(accountID int64) ([]domain.Transfer, bool)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts AccountService
	history  HistoryService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService, history HistoryService) *AccountHandler {
	return &AccountHandler{accounts: accounts, history: history}
}

// Create opens a new account under a user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req.UserID, req.Balance, req.Name)
	if err != nil {
		writeError(w, mapOperationError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(*account))
}

// History returns an account's history view state and cached records.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	transfers, open := h.history.Transfers(accountID)
	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(accountID, transfers, open))
}

// ToggleHistory flips an account's history view and returns the resulting
// state.
func (h *AccountHandler) ToggleHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	open, err := h.history.Toggle(r.Context(), accountID)
	if err != nil {
		writeError(w, mapOperationError(err), "failed to open history", err.Error())
		return
	}

	transfers, _ := h.history.Transfers(accountID)
	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(accountID, transfers, open))
}
