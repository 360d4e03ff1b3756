package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jakeadel/bank-demo/internal/adapter/http/dto"
	"github.com/jakeadel/bank-demo/internal/domain"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	Users() []*domain.User
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeError(w, mapOperationError(err), "failed to create user", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// List returns the current mirror of users and accounts.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.UsersFromDomain(h.users.Users()))
}
