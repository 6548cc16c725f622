// Package transferrepo executes money movements as single database
// transactions under serializable isolation.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bankcore/ledger/internal/accountrepo"
	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/entryrepo"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transfer repository layer logic.
//
// Each exported method performs exactly one attempt. A failed attempt leaves
// no partial effect; retrying on domain.ErrConflict is the engine's job.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// TransferTx moves amount between two accounts.
//
// It debits the source, credits the destination and appends one ledger entry
// within a single serializable transaction. Both balance mutations are applied
// in ascending account id order regardless of the transfer direction so that
// two opposing transfers over the same pair cannot deadlock each other.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		from, to, err := getOrdered(ctx, accounts, arg.FromAccountID, arg.ToAccountID)
		if err != nil {
			return err
		}

		debit, credit := "-"+arg.Amount, arg.Amount

		if from.ID < to.ID {
			result.FromAccount, result.ToAccount, err = applyDeltas(ctx, accounts, deltaPair{
				first:       from,
				firstDelta:  debit,
				second:      to,
				secondDelta: credit,
			})
		} else {
			result.ToAccount, result.FromAccount, err = applyDeltas(ctx, accounts, deltaPair{
				first:       to,
				firstDelta:  credit,
				second:      from,
				secondDelta: debit,
			})
		}

		if err != nil {
			return err
		}

		result.Entry, err = entries.Create(ctx, &arg.FromAccountID, &arg.ToAccountID, arg.Amount)

		return err
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// DepositTx credits the account by amount and appends a ledger entry with no
// source account.
func (r *RepoPGS) DepositTx(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	var result domain.BalanceTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		account, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}

		result.Account, err = accounts.ApplyDelta(ctx, amount, account.ID, account.Version)
		if err != nil {
			return err
		}

		result.Entry, err = entries.Create(ctx, nil, &accountID, amount)

		return err
	})

	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// WithdrawTx debits the account by amount and appends a ledger entry with no
// destination account.
func (r *RepoPGS) WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	var result domain.BalanceTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		account, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}

		result.Account, err = accounts.ApplyDelta(ctx, "-"+amount, account.ID, account.Version)
		if err != nil {
			return err
		}

		result.Entry, err = entries.Create(ctx, &accountID, nil, amount)

		return err
	})

	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// execTx runs fn inside a serializable transaction and commits it.
// Serialization failures surface as domain.ErrConflict.
func (r *RepoPGS) execTx(ctx context.Context, fn func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrUnavailable
	}

	if err := fn(accountrepo.NewRepoPGS(tx), entryrepo.NewRepoPGS(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			l.Error().Err(rbErr).Send()
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && dbpkg.IsSerializationFailure(pqErr) {
			return domain.ErrConflict
		}

		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrConnDone) {
			return errorspkg.ErrUnavailable
		}

		return errorspkg.ErrInternal
	}

	return nil
}

// getOrdered reads both accounts in ascending id order and returns them in
// caller order (from, to).
func getOrdered(ctx context.Context, accounts *accountrepo.RepoPGS, fromID, toID int32) (domain.Account, domain.Account, error) {
	firstID, secondID := fromID, toID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	first, err := accounts.Get(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	second, err := accounts.Get(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if firstID == fromID {
		return first, second, nil
	}

	return second, first, nil
}

type deltaPair struct {
	first       domain.Account
	firstDelta  string
	second      domain.Account
	secondDelta string
}

func applyDeltas(ctx context.Context, accounts *accountrepo.RepoPGS, arg deltaPair) (domain.Account, domain.Account, error) {
	first, err := accounts.ApplyDelta(ctx, arg.firstDelta, arg.first.ID, arg.first.Version)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	second, err := accounts.ApplyDelta(ctx, arg.secondDelta, arg.second.ID, arg.second.Version)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return first, second, nil
}
