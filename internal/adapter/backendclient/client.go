// Package backendclient is the typed HTTP client for the ledger backend.
// The backend is the only authority over balances and transfers; this client
// never retries an operation and propagates rejections as the bare HTTP
// status line, which is all the contract exposes.
package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jakeadel/bank-demo/internal/domain"
	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
)

// StatusError is a non-2xx backend response. Its message is the HTTP status
// line only; the backend's rejection taxonomy is not modeled.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return e.Status
}

// Config holds client construction options.
type Config struct {
	BaseURL string
	// Timeout of zero means no client-side timeout; calls then rely on the
	// platform's connection behavior.
	Timeout time.Duration
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Client talks to the ledger backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// New creates a backend client.
func New(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

type createUserRequest struct {
	Username string `json:"username"`
}

type createUserResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// CreateUser registers a new user and returns it with an empty account list.
func (c *Client) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	var resp createUserResponse
	if err := c.post(ctx, "create_user", "/users", createUserRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &domain.User{ID: resp.UserID, Username: resp.Username, Accounts: []domain.Account{}}, nil
}

type createAccountRequest struct {
	UserID  int64  `json:"user_id"`
	Balance int64  `json:"balance"`
	Name    string `json:"account_name,omitempty"`
}

type createAccountResponse struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"account_name"`
	UserID    int64  `json:"user_id"`
	Balance   int64  `json:"balance"`
}

// CreateAccount opens an account under a user. Balance is in minor units;
// name is optional and the backend assigns a default when it is empty.
func (c *Client) CreateAccount(ctx context.Context, userID, balance int64, name string) (*domain.Account, error) {
	req := createAccountRequest{UserID: userID, Balance: balance, Name: name}

	var resp createAccountResponse
	if err := c.post(ctx, "create_account", "/accounts", req, &resp); err != nil {
		return nil, err
	}
	return &domain.Account{ID: resp.AccountID, Name: resp.Name, Balance: resp.Balance}, nil
}

type transferRequest struct {
	SenderID   int64 `json:"sender_id"`
	ReceiverID int64 `json:"receiver_id"`
	Amount     int64 `json:"transfer_amount"`
}

// TransferFunds moves amount minor units between two accounts. The ack body
// is not used; the local view is refreshed through balance queries instead.
func (c *Client) TransferFunds(ctx context.Context, senderID, receiverID, amount int64) error {
	req := transferRequest{SenderID: senderID, ReceiverID: receiverID, Amount: amount}
	return c.post(ctx, "transfer_funds", "/transfers", req, nil)
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

// GetBalance fetches the authoritative balance of one account.
func (c *Client) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	var resp balanceResponse
	path := fmt.Sprintf("/accounts/%d/balance", accountID)
	if err := c.get(ctx, "get_balance", path, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

type transferHistoryResponse struct {
	Transfers []domain.Transfer `json:"transfers"`
}

// GetTransferHistory fetches the full transfer history of one account,
// oldest first.
func (c *Client) GetTransferHistory(ctx context.Context, accountID int64) ([]domain.Transfer, error) {
	var resp transferHistoryResponse
	path := fmt.Sprintf("/accounts/%d/transfer_history", accountID)
	if err := c.get(ctx, "get_transfer_history", path, &resp); err != nil {
		return nil, err
	}
	return resp.Transfers, nil
}

// ListUsers fetches all users with their accounts.
func (c *Client) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var resp []*domain.User
	if err := c.get(ctx, "list_users", "/users", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Health reports whether the backend answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "health", "/health", nil)
}

func (c *Client) post(ctx context.Context, call, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", call, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", call, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(call, req, out)
}

func (c *Client) get(ctx context.Context, call, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", call, err)
	}

	return c.do(call, req, out)
}

func (c *Client) do(call string, req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(call, "transport", start)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(call, "rejected", start)
		c.logger.Debug().
			Str("call", call).
			Str("status", resp.Status).
			Msg("backend rejected request")
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.observe(call, "transport", start)
			return fmt.Errorf("decode %s response: %w", call, err)
		}
	}

	c.observe(call, "ok", start)
	c.logger.Debug().
		Str("call", call).
		Dur("duration", time.Since(start)).
		Msg("backend call completed")
	return nil
}

func (c *Client) observe(call, outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.BackendRequests.WithLabelValues(call, outcome).Inc()
	c.metrics.BackendDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
}
