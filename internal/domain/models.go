package domain

// User is an operator-visible user owning an ordered list of accounts.
// The account list is append-only for the life of the session.
type User struct {
	ID       int64     `json:"user_id"`
	Username string    `json:"username"`
	Accounts []Account `json:"accounts"`
}

// Account is a ledger account as mirrored from the backend.
// Balance is an integer amount in minor currency units (cents).
type Account struct {
	ID      int64  `json:"account_id"`
	Name    string `json:"account_name"`
	Balance int64  `json:"balance"`
}

// Role says which side of a transfer the viewed account was on.
type Role string

const (
	RoleSender   Role = "sender"
	RoleReceiver Role = "receiver"
)

// Transfer is a single row of an account's transfer history. It is only
// held inside an open history view, never in the ledger mirror; closing
// the view discards it.
type Transfer struct {
	ID               int64  `json:"transfer_id"`
	SenderID         int64  `json:"sender_id"`
	ReceiverID       int64  `json:"receiver_id"`
	Amount           int64  `json:"transfer_amount"`
	ResultingBalance int64  `json:"resulting_balance"`
	Role             Role   `json:"account_role"`
	Time             string `json:"transfer_time"`
}
