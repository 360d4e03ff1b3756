package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount  = errors.New("amount must be a valid decimal")
	ErrNegativeAmount = errors.New("amount must not be negative")

	// Store errors
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")
)
