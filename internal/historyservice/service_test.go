package historyservice

import (
	"context"
	"testing"
	"time"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/accounttypepkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	accountID := int32(1)
	otherID := int32(2)

	testAccount := domain.Account{
		ID:          accountID,
		CustomerID:  1,
		AccountType: accounttypepkg.Checking,
		Balance:     "1000",
		Version:     1,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}

	testEntries := []domain.Entry{
		{
			ID:            3,
			FromAccountID: &accountID,
			ToAccountID:   &otherID,
			Amount:        "300",
			CreatedAt:     time.Now().Truncate(time.Second).UTC(),
		},
		{
			ID:            2,
			FromAccountID: &otherID,
			ToAccountID:   &accountID,
			Amount:        "200",
			CreatedAt:     time.Now().Add(-time.Minute).Truncate(time.Second).UTC(),
		},
		{
			ID:          1,
			ToAccountID: &accountID,
			Amount:      "500",
			CreatedAt:   time.Now().Add(-2 * time.Minute).Truncate(time.Second).UTC(),
		},
	}

	testCases := []struct {
		name          string
		buildStubs    func(ledger *MockLedger, accounts *MockAccountGetter)
		checkResponse func(items []domain.HistoryItem, err error)
	}{
		{
			name: "AccountNotFound",
			buildStubs: func(ledger *MockLedger, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				ledger.EXPECT().ListForAccount(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(items []domain.HistoryItem, err error) {
				require.Nil(t, items)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "LedgerError",
			buildStubs: func(ledger *MockLedger, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(testAccount, nil)
				ledger.EXPECT().ListForAccount(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			checkResponse: func(items []domain.HistoryItem, err error) {
				require.Nil(t, items)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "EmptyHistory",
			buildStubs: func(ledger *MockLedger, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(testAccount, nil)
				ledger.EXPECT().ListForAccount(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return([]domain.Entry{}, nil)
			},
			checkResponse: func(items []domain.HistoryItem, err error) {
				require.NoError(t, err)
				require.NotNil(t, items)
				require.Empty(t, items)
			},
		},
		{
			name: "DirectionsResolved",
			buildStubs: func(ledger *MockLedger, accounts *MockAccountGetter) {
				accounts.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(testAccount, nil)
				ledger.EXPECT().ListForAccount(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(testEntries, nil)
			},
			checkResponse: func(items []domain.HistoryItem, err error) {
				require.NoError(t, err)
				require.Len(t, items, 3)

				require.Equal(t, testEntries[0], items[0].Entry)
				require.Equal(t, domain.DirectionOutgoing, items[0].Direction)

				require.Equal(t, testEntries[1], items[1].Entry)
				require.Equal(t, domain.DirectionIncoming, items[1].Direction)

				require.Equal(t, testEntries[2], items[2].Entry)
				require.Equal(t, domain.DirectionIncoming, items[2].Direction)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := NewMockLedger(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			tc.buildStubs(ledger, accounts)

			service := New(ledger, accounts)

			items, err := service.List(context.Background(), accountID)
			tc.checkResponse(items, err)
		})
	}
}
