// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (customer_id, account_type, balance)
VALUES
    ($1, $2, $3)
RETURNING id, customer_id, account_type, balance, version, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, customerID int32, accountType, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, customerID, accountType, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.AccountType,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_customer_id_fkey":
				return a, domain.ErrCustomerNotFound
			case "accounts_balance_check":
				return a, domain.ErrNegativeInitialDeposit
			case "accounts_account_type_check":
				return a, domain.ErrUnsupportedAccountType
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, customer_id, account_type, balance, version, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.AccountType,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const applyDeltaQuery = `
UPDATE accounts
SET balance = balance + $1, version = version + 1
WHERE id = $2 AND version = $3
RETURNING id, customer_id, account_type, balance, version, created_at
`

// ApplyDelta atomically adjusts the balance of the account by delta, positive
// or negative, conditioned on the account version not having advanced since it
// was read.
//
// It returns domain.ErrConflict when a concurrent mutation won the race,
// domain.ErrInsufficientBalance when the new balance would be negative, and
// domain.ErrAccountNotFound when the account does not exist.
func (r *RepoPGS) ApplyDelta(ctx context.Context, delta string, id int32, version int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, applyDeltaQuery, delta, id, version)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.AccountType,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			// No row matched: either the account vanished or the version
			// advanced under us. Tell them apart with a plain read.
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return a, getErr
			}

			return a, domain.ErrConflict
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}

			if dbpkg.IsSerializationFailure(pqErr) {
				return a, domain.ErrConflict
			}
		}

		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrConnDone) {
			return a, errorspkg.ErrUnavailable
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByCustomerQuery = `
SELECT
	id, customer_id, account_type, balance, version, created_at
FROM accounts
WHERE customer_id = $1
ORDER BY id
`

// ListByCustomer returns all accounts owned by the given customer.
func (r *RepoPGS) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByCustomerQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.AccountType, &a.Balance, &a.Version, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
