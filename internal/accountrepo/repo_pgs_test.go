//go:build integration

package accountrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bankcore/ledger/internal/accountrepo"
	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/integrationtest"
	"github.com/bankcore/ledger/internal/integrationtest/helpers"
	"github.com/bankcore/ledger/pkg/configpkg"
	"github.com/bankcore/ledger/pkg/randompkg"
)

var testConfig configpkg.Config

func TestMain(m *testing.M) {
	var err error

	testConfig, err = configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	customer := helpers.SeedCustomer(t, tx)

	balance := randompkg.MoneyAmountBetween(1_000, 10_000)
	accountType := randompkg.AccountType()

	account, err := testRepo.Create(context.Background(), customer.ID, accountType, balance)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, customer.ID, account.CustomerID)
	require.Equal(t, accountType, account.AccountType)
	require.Equal(t, balance, account.Balance)
	require.Equal(t, int64(1), account.Version)

	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)
}

func TestCreateConstraintViolations(t *testing.T) {
	// Constraint violations abort an enclosing transaction, so this test runs
	// on a plain connection that is flushed afterwards.
	db := integrationtest.SetupDB(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(db)

	customer := helpers.SeedCustomer(t, db)

	type input struct {
		customerID  int32
		accountType string
		balance     string
	}

	testCases := []struct {
		name    string
		input   input
		wantErr error
	}{
		{
			name:    "ErrCustomerNotFound",
			input:   input{customer.ID + 1000, "CHECKING", "1000"},
			wantErr: domain.ErrCustomerNotFound,
		},
		{
			name:    "ErrNegativeInitialDeposit",
			input:   input{customer.ID, "CHECKING", "-1000"},
			wantErr: domain.ErrNegativeInitialDeposit,
		},
		{
			name:    "ErrUnsupportedAccountType",
			input:   input{customer.ID, "BROKERAGE", "1000"},
			wantErr: domain.ErrUnsupportedAccountType,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			account, err := testRepo.Create(context.Background(), tc.input.customerID, tc.input.accountType, tc.input.balance)
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, account)
		})
	}
}

func TestGet(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	got, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	require.Equal(t, account.ID, got.ID)
	require.Equal(t, account.CustomerID, got.CustomerID)
	require.Equal(t, account.Balance, got.Balance)
	require.Equal(t, account.Version, got.Version)
	require.WithinDuration(t, account.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetNotFound(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	got, err := testRepo.Get(context.Background(), 55555)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, got)
}

func TestApplyDelta(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	delta := "250.50"

	got, err := testRepo.ApplyDelta(context.Background(), delta, account.ID, account.Version)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	balanceBefore, err := decimal.NewFromString(account.Balance)
	require.NoError(t, err)
	deltaDecimal, err := decimal.NewFromString(delta)
	require.NoError(t, err)
	balanceAfter, err := decimal.NewFromString(got.Balance)
	require.NoError(t, err)

	require.True(t, balanceBefore.Add(deltaDecimal).Equal(balanceAfter))
	require.Equal(t, account.Version+1, got.Version)
}

func TestApplyDeltaStaleVersion(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	// Advance the version with a first mutation, then replay the original one.
	_, err := testRepo.ApplyDelta(context.Background(), "100", account.ID, account.Version)
	require.NoError(t, err)

	got, err := testRepo.ApplyDelta(context.Background(), "100", account.ID, account.Version)
	require.ErrorIs(t, err, domain.ErrConflict)
	require.Empty(t, got)
}

func TestApplyDeltaOverdraw(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	got, err := testRepo.ApplyDelta(context.Background(), "-1000.01", account.ID, account.Version)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.Empty(t, got)
}

func TestApplyDeltaExactBalance(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	got, err := testRepo.ApplyDelta(context.Background(), "-1000", account.ID, account.Version)
	require.NoError(t, err)

	balance, err := decimal.NewFromString(got.Balance)
	require.NoError(t, err)
	require.True(t, balance.IsZero())
}

func TestApplyDeltaNotFound(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	got, err := testRepo.ApplyDelta(context.Background(), "100", 55555, 1)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, got)
}

func TestListByCustomer(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	customer := helpers.SeedCustomer(t, tx)

	want := make([]domain.Account, 0, 3)
	for i := 0; i < 3; i++ {
		want = append(want, helpers.SeedAccountWithBalance(t, tx, customer.ID, randompkg.MoneyAmountBetween(100, 1_000)))
	}

	accounts, err := testRepo.ListByCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, accounts, len(want))

	for i, account := range accounts {
		require.Equal(t, want[i].ID, account.ID)
		require.Equal(t, customer.ID, account.CustomerID)
		require.Equal(t, want[i].Balance, account.Balance)
	}
}

func TestListByCustomerEmpty(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	customer := helpers.SeedCustomer(t, tx)

	accounts, err := testRepo.ListByCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.NotNil(t, accounts)
	require.Empty(t, accounts)
}
