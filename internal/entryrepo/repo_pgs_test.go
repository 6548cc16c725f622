//go:build integration

package entryrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/entryrepo"
	"github.com/bankcore/ledger/internal/integrationtest"
	"github.com/bankcore/ledger/internal/integrationtest/helpers"
	"github.com/bankcore/ledger/pkg/configpkg"
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
	testRepo := entryrepo.NewRepoPGS(tx)

	from := helpers.SeedAccountWith1000Balance(t, tx)
	to := helpers.SeedAccountWith1000Balance(t, tx)

	entry, err := testRepo.Create(context.Background(), &from.ID, &to.ID, "100")
	require.NoError(t, err)
	require.NotEmpty(t, entry)

	require.NotZero(t, entry.ID)
	require.NotZero(t, entry.CreatedAt)
	require.Equal(t, from.ID, *entry.FromAccountID)
	require.Equal(t, to.ID, *entry.ToAccountID)
	require.Equal(t, "100", entry.Amount)
}

func TestCreateOneSided(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := entryrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	// Deposit entry has no source account.
	deposit, err := testRepo.Create(context.Background(), nil, &account.ID, "500")
	require.NoError(t, err)
	require.Nil(t, deposit.FromAccountID)
	require.Equal(t, account.ID, *deposit.ToAccountID)

	// Withdrawal entry has no destination account.
	withdrawal, err := testRepo.Create(context.Background(), &account.ID, nil, "200")
	require.NoError(t, err)
	require.Nil(t, withdrawal.ToAccountID)
	require.Equal(t, account.ID, *withdrawal.FromAccountID)
}

func TestCreateInvalid(t *testing.T) {
	// Constraint violations abort an enclosing transaction, so this test runs
	// on a plain connection that is flushed afterwards.
	db := integrationtest.SetupDB(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := entryrepo.NewRepoPGS(db)

	account := helpers.SeedAccountWith1000Balance(t, db)
	missingID := account.ID + 1000

	testCases := []struct {
		name    string
		from    *int32
		to      *int32
		amount  string
		wantErr error
	}{
		{
			name:    "NoParticipants",
			amount:  "100",
			wantErr: domain.ErrInvalidEntry,
		},
		{
			name:    "NonPositiveAmount",
			from:    &account.ID,
			to:      nil,
			amount:  "0",
			wantErr: domain.ErrInvalidEntry,
		},
		{
			name:    "UnknownAccount",
			from:    &missingID,
			to:      &account.ID,
			amount:  "100",
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			entry, err := testRepo.Create(context.Background(), tc.from, tc.to, tc.amount)
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, entry)
		})
	}
}

func TestGet(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := entryrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	entry, err := testRepo.Create(context.Background(), nil, &account.ID, "500")
	require.NoError(t, err)

	got, err := testRepo.Get(context.Background(), entry.ID)
	require.NoError(t, err)
	require.Equal(t, entry.ID, got.ID)
	require.Equal(t, entry.Amount, got.Amount)

	_, err = testRepo.Get(context.Background(), entry.ID+1000)
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestListForAccount(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := entryrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)
	other := helpers.SeedAccountWith1000Balance(t, tx)

	// Three entries touching the account plus one unrelated entry.
	_, err := testRepo.Create(context.Background(), nil, &account.ID, "500")
	require.NoError(t, err)
	_, err = testRepo.Create(context.Background(), &account.ID, &other.ID, "100")
	require.NoError(t, err)
	_, err = testRepo.Create(context.Background(), &account.ID, nil, "50")
	require.NoError(t, err)
	_, err = testRepo.Create(context.Background(), nil, &other.ID, "77")
	require.NoError(t, err)

	entries, err := testRepo.ListForAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Most recent first, ties on the timestamp broken by descending id.
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]

		require.False(t, prev.CreatedAt.Before(cur.CreatedAt))

		if prev.CreatedAt.Equal(cur.CreatedAt) {
			require.Greater(t, prev.ID, cur.ID)
		}
	}

	for _, e := range entries {
		participates := (e.FromAccountID != nil && *e.FromAccountID == account.ID) ||
			(e.ToAccountID != nil && *e.ToAccountID == account.ID)
		require.True(t, participates)
	}
}

func TestListForAccountEmpty(t *testing.T) {
	tx := integrationtest.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := entryrepo.NewRepoPGS(tx)

	account := helpers.SeedAccountWith1000Balance(t, tx)

	entries, err := testRepo.ListForAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
