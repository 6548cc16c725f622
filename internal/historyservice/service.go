// Package historyservice manages the read-only transaction history projection.
package historyservice

import (
	"context"

	"github.com/bankcore/ledger/internal/domain"
)

// Ledger provides data access layer interface needed by the history service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package historyservice
type Ledger interface {
	ListForAccount(ctx context.Context, accountID int32) ([]domain.Entry, error)
}

// AccountGetter resolves accounts so that history for a missing account is
// reported as not found rather than as an empty history.
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates history query logic.
type Service struct {
	ledger   Ledger
	accounts AccountGetter
}

// New returns history service struct.
func New(ledger Ledger, accounts AccountGetter) *Service {
	return &Service{
		ledger:   ledger,
		accounts: accounts,
	}
}

// List returns the account's ledger entries most recent first, each tagged
// with the movement direction relative to the queried account. An existing
// account with no history yields an empty slice.
func (s *Service) List(ctx context.Context, accountID int32) ([]domain.HistoryItem, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, err
	}

	entries, err := s.ledger.ListForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.HistoryItem, 0, len(entries))

	for _, e := range entries {
		direction := domain.DirectionIncoming
		if e.FromAccountID != nil && *e.FromAccountID == accountID {
			direction = domain.DirectionOutgoing
		}

		items = append(items, domain.HistoryItem{Entry: e, Direction: direction})
	}

	return items, nil
}
