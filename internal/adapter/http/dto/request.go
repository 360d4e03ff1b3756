package dto

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateAccountRequest represents a request to open an account. Balance is
// the operator-entered decimal string; conversion to minor units happens in
// the money package before anything reaches the backend.
type CreateAccountRequest struct {
	UserID  int64  `json:"user_id"`
	Balance string `json:"balance"`
	Name    string `json:"account_name,omitempty"`
}

// CreateTransferRequest represents a request to move funds.
type CreateTransferRequest struct {
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Amount     string `json:"amount"`
}
