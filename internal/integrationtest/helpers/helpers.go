// Package helpers provides shared seeding helpers for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/bankcore/ledger/internal/accountrepo"
	"github.com/bankcore/ledger/internal/customerrepo"
	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/employeerepo"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/passpkg"
	"github.com/bankcore/ledger/pkg/randompkg"
)

// SeedCustomer creates a random customer.
func SeedCustomer(t *testing.T, db dbpkg.SQLInterface) domain.Customer {
	t.Helper()

	customerRepo := customerrepo.NewRepoPGS(db)

	customer, err := customerRepo.Create(context.Background(), randompkg.Name())
	if err != nil {
		t.Fatalf("customerRepo.Create(ctx, ...) returned error: %v", err)
	}

	return customer
}

// SeedAccountWithBalance creates an account for the customer with the given
// opening balance.
func SeedAccountWithBalance(t *testing.T, db dbpkg.SQLInterface, customerID int32, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), customerID, randompkg.AccountType(), balance)
	if err != nil {
		t.Fatalf("accountRepo.Create(ctx, %v, ...) returned error: %v", customerID, err)
	}

	return account
}

// SeedAccountWith1000Balance creates an account with a 1000 opening balance
// for a fresh random customer.
func SeedAccountWith1000Balance(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	customer := SeedCustomer(t, db)

	return SeedAccountWithBalance(t, db, customer.ID, "1000")
}

// SeedEmployee creates an employee with the given role and a known password.
func SeedEmployee(t *testing.T, db dbpkg.SQLInterface, role, password string) domain.Employee {
	t.Helper()

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	employeeRepo := employeerepo.NewRepoPGS(db)

	employee, err := employeeRepo.Create(context.Background(), randompkg.Name(), hashedPassword, role)
	if err != nil {
		t.Fatalf("employeeRepo.Create(ctx, ...) returned error: %v", err)
	}

	return employee
}
