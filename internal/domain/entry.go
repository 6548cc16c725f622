package domain

import (
	"errors"
	"time"
)

var (
	// ErrEntryNotFound indicates that the ledger entry is not found.
	ErrEntryNotFound = errors.New("ledger entry not found")
	// ErrInvalidEntry indicates an entry with a non-positive amount or
	// without any participating account.
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// Direction of an entry relative to a queried account.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Entry is an immutable record of one completed money movement.
//
// A transfer populates both account references, a deposit only ToAccountID,
// a withdrawal only FromAccountID. Amount is always positive.
type Entry struct {
	ID            int64     `json:"id"`
	FromAccountID *int32    `json:"from_account_id"`
	ToAccountID   *int32    `json:"to_account_id"`
	Amount        string    `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryItem is an Entry decorated with the direction of the movement
// relative to the account whose history was queried.
type HistoryItem struct {
	Entry
	Direction string `json:"direction"`
}
