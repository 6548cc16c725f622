package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNegativeInitialDeposit indicates that the initial deposit is negative.
	ErrNegativeInitialDeposit = errors.New("initial deposit must not be negative")
	// ErrUnsupportedAccountType indicates an account type outside the supported set.
	ErrUnsupportedAccountType = errors.New("unsupported account type")
	// ErrConflict indicates that a concurrent modification invalidated the
	// current attempt. Retryable by the transfer engine.
	ErrConflict = errors.New("concurrent balance modification")
)

// Account holds balance data for a customer account.
//
// Balance is a decimal string backed by a NUMERIC column. Version advances on
// every balance mutation and conditions ApplyDelta.
type Account struct {
	ID          int32     `json:"id"`
	CustomerID  int32     `json:"customer_id"`
	AccountType string    `json:"account_type"`
	Balance     string    `json:"balance"`
	Version     int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAccountParams is the input data for account creation.
type CreateAccountParams struct {
	CustomerID     int32  `json:"customer_id"`
	AccountType    string `json:"account_type"`
	InitialDeposit string `json:"initial_deposit"`
}
