// Package entryrepo manages repository layer of ledger entries.
package entryrepo

import (
	"context"
	"database/sql"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (from_account_id, to_account_id, amount)
VALUES
    ($1, $2, $3)
RETURNING id, from_account_id, to_account_id, amount, created_at
`

// Create appends the entry to the ledger and returns it with its assigned id
// and commit timestamp. Entries are never updated or deleted afterwards.
func (r *RepoPGS) Create(ctx context.Context, fromAccountID, toAccountID *int32, amount string) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	if fromAccountID == nil && toAccountID == nil {
		return domain.Entry{}, domain.ErrInvalidEntry
	}

	row := r.db.QueryRowContext(ctx, createQuery, fromAccountID, toAccountID, amount)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.FromAccountID,
		&e.ToAccountID,
		&e.Amount,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_from_account_id_fkey", "entries_to_account_id_fkey":
				return e, domain.ErrAccountNotFound
			case "entries_amount_check", "entries_participant_check":
				return e, domain.ErrInvalidEntry
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT id, from_account_id, to_account_id, amount, created_at FROM entries
WHERE id = $1 LIMIT 1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.FromAccountID,
		&e.ToAccountID,
		&e.Amount,
		&e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return e, domain.ErrEntryNotFound
		}

		l.Error().Err(err).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listForAccountQuery = `
SELECT id, from_account_id, to_account_id, amount, created_at FROM entries
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY created_at DESC, id DESC
`

// ListForAccount returns all entries in which the account participates,
// most recent first, ties on the commit timestamp broken by descending id.
// An account with no history yields an empty slice.
func (r *RepoPGS) ListForAccount(ctx context.Context, accountID int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.FromAccountID,
			&e.ToAccountID,
			&e.Amount,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
