package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/accounttypepkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/bankcore/ledger/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	testCustomerID := randompkg.Int32()
	testAccount := domain.Account{
		ID:          randompkg.Int32(),
		CustomerID:  testCustomerID,
		AccountType: accounttypepkg.Checking,
		Balance:     "1000",
		Version:     1,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}

	testCases := []struct {
		name          string
		arg           domain.CreateAccountParams
		buildStubs    func(repo *MockRepo, customers *MockCustomerDirectory)
		checkResponse func(account domain.Account, err error)
	}{
		{
			name: "InvalidInitialDeposit",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "ten",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name: "NegativeInitialDeposit",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "-1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, domain.ErrNegativeInitialDeposit)
			},
		},
		{
			name: "UnsupportedAccountType",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    "BROKERAGE",
				InitialDeposit: "1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, domain.ErrUnsupportedAccountType)
			},
		},
		{
			name: "CustomerNotFound",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(false, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, domain.ErrCustomerNotFound)
			},
		},
		{
			name: "CustomerLookupError",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(false, errorspkg.ErrUnavailable)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, errorspkg.ErrUnavailable)
			},
		},
		{
			name: "RepoError",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testCustomerID), gomock.Eq(accounttypepkg.Checking), gomock.Eq("1000")).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "OK",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "1000",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testCustomerID), gomock.Eq(accounttypepkg.Checking), gomock.Eq("1000")).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(account domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, account)
			},
		},
		{
			name: "NormalizesDepositString",
			arg: domain.CreateAccountParams{
				CustomerID:     testCustomerID,
				AccountType:    accounttypepkg.Checking,
				InitialDeposit: "1000.50",
			},
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testCustomerID), gomock.Eq(accounttypepkg.Checking), gomock.Eq("1000.5")).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(account domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, account)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			customers := NewMockCustomerDirectory(ctrl)
			tc.buildStubs(repo, customers)

			service := New(repo, customers)

			account, err := service.Create(context.Background(), tc.arg)
			tc.checkResponse(account, err)
		})
	}
}

func TestGet(t *testing.T) {
	testAccount := domain.Account{
		ID:          randompkg.Int32(),
		CustomerID:  randompkg.Int32(),
		AccountType: accounttypepkg.Savings,
		Balance:     randompkg.MoneyAmountBetween(100, 10_000),
		Version:     1,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(account domain.Account, err error)
	}{
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(account domain.Account, err error) {
				require.Empty(t, account)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(account domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, account)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, NewMockCustomerDirectory(ctrl))

			account, err := service.Get(context.Background(), testAccount.ID)
			tc.checkResponse(account, err)
		})
	}
}

func TestListByCustomer(t *testing.T) {
	testCustomerID := randompkg.Int32()
	testAccounts := []domain.Account{
		{
			ID:          1,
			CustomerID:  testCustomerID,
			AccountType: accounttypepkg.Checking,
			Balance:     "1000",
			Version:     1,
		},
		{
			ID:          2,
			CustomerID:  testCustomerID,
			AccountType: accounttypepkg.Savings,
			Balance:     "250.75",
			Version:     1,
		},
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, customers *MockCustomerDirectory)
		checkResponse func(accounts []domain.Account, err error)
	}{
		{
			name: "CustomerNotFound",
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(false, nil)
				repo.EXPECT().ListByCustomer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(accounts []domain.Account, err error) {
				require.Empty(t, accounts)
				require.ErrorIs(t, err, domain.ErrCustomerNotFound)
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, customers *MockCustomerDirectory) {
				customers.EXPECT().Exists(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().ListByCustomer(gomock.Any(), gomock.Eq(testCustomerID)).
					Times(1).
					Return(testAccounts, nil)
			},
			checkResponse: func(accounts []domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccounts, accounts)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			customers := NewMockCustomerDirectory(ctrl)
			tc.buildStubs(repo, customers)

			service := New(repo, customers)

			accounts, err := service.ListByCustomer(context.Background(), testCustomerID)
			tc.checkResponse(accounts, err)
		})
	}
}
