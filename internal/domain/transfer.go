package domain

import "errors"

var (
	// ErrInvalidAmount indicates an amount that is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates an amount less than or equal to zero.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrSameAccount indicates a transfer where source and destination match.
	ErrSameAccount = errors.New("cannot transfer money to the same account")
	// ErrInsufficientBalance indicates that the account cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrTooManyConflicts indicates that the retry budget was exhausted on
	// concurrent modification conflicts. Callers may retry the whole operation.
	ErrTooManyConflicts = errors.New("too many conflicting transactions, try again later")
)

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID int32  `json:"from_account_id"`
	ToAccountID   int32  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Entry       Entry   `json:"entry"`
	FromAccount Account `json:"from_account"`
	ToAccount   Account `json:"to_account"`
}

// BalanceTxResult is the result of a deposit or withdrawal transaction.
type BalanceTxResult struct {
	Entry   Entry   `json:"entry"`
	Account Account `json:"account"`
}
