// Package customerrepo manages repository layer of the customer directory.
package customerrepo

import (
	"context"
	"database/sql"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO customers (name)
VALUES ($1)
RETURNING id, name, created_at
`

// Create adds a customer to the directory.
func (r *RepoPGS) Create(ctx context.Context, name string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, name)

	var c domain.Customer

	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		l.Error().Err(err).Send()
		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT id, name, created_at FROM customers
WHERE id = $1
`

// Get returns the customer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var c domain.Customer

	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

// Exists reports whether a customer with the given id exists.
func (r *RepoPGS) Exists(ctx context.Context, id int32) (bool, error) {
	_, err := r.Get(ctx, id)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

const listQuery = `
SELECT id, name, created_at FROM customers
ORDER BY id
`

// List returns all customers in the directory.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Customer{}

	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
