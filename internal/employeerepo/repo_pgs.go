// Package employeerepo manages repository layer of employees.
package employeerepo

import (
	"context"
	"database/sql"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates employee repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns employee RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const getByUsernameQuery = `
SELECT id, username, hashed_password, role, created_at FROM employees
WHERE username = $1
`

// GetByUsername returns the employee with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.Employee, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByUsernameQuery, username)

	var e domain.Employee

	err := row.Scan(&e.ID, &e.Username, &e.HashedPassword, &e.Role, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return e, domain.ErrEmployeeNotFound
		}

		l.Error().Err(err).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const createQuery = `
INSERT INTO
    employees (username, hashed_password, role)
VALUES
    ($1, $2, $3)
RETURNING id, username, hashed_password, role, created_at
`

// Create creates the employee and then returns it. Used by seeding and tests.
func (r *RepoPGS) Create(ctx context.Context, username, hashedPassword, role string) (domain.Employee, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, username, hashedPassword, role)

	var e domain.Employee

	err := row.Scan(&e.ID, &e.Username, &e.HashedPassword, &e.Role, &e.CreatedAt)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "employees_role_check" {
				return e, domain.ErrUnknownRole
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}
