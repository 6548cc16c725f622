// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/accounttypepkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, customerID int32, accountType, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Account, error)
}

// CustomerDirectory provides the customer existence check used during account
// creation.
type CustomerDirectory interface {
	Exists(ctx context.Context, id int32) (bool, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	customers CustomerDirectory
}

// New returns account service struct to manage account business logic.
func New(ar Repo, cd CustomerDirectory) *Service {
	return &Service{
		repo:      ar,
		customers: cd,
	}
}

// Create creates an account for the given customer with the initial deposit
// as its opening balance. The opening balance produces no ledger entry.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	deposit, err := decimal.NewFromString(arg.InitialDeposit)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if deposit.IsNegative() {
		return domain.Account{}, domain.ErrNegativeInitialDeposit
	}

	if !accounttypepkg.IsSupportedAccountType(arg.AccountType) {
		return domain.Account{}, domain.ErrUnsupportedAccountType
	}

	exists, err := s.customers.Exists(ctx, arg.CustomerID)
	if err != nil {
		return domain.Account{}, err
	}

	if !exists {
		return domain.Account{}, domain.ErrCustomerNotFound
	}

	account, err := s.repo.Create(ctx, arg.CustomerID, arg.AccountType, deposit.String())
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// ListByCustomer returns the accounts owned by the given customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Account, error) {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrCustomerNotFound
	}

	accounts, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
