// Package transferservice manages business logic layer of money movements.
//
// It is the single owner of balance mutation: deposits, withdrawals and
// transfers all pass through here, and each runs as one atomic unit that the
// service retries on contention up to a fixed budget.
package transferservice

import (
	"context"
	"errors"
	"time"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Retry defaults. The original deployment capped contention retries at three
// attempts; the backoff doubles after each one.
const (
	DefaultMaxAttempts  = 3
	DefaultRetryBackoff = 50 * time.Millisecond
)

// Repo provides data access layer interface needed by transfer service layer.
// Every method performs a single atomic attempt of the operation.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	DepositTx(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	WithdrawTx(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo         Repo
	maxAttempts  int
	retryBackoff time.Duration
}

// New returns transfer service struct with the default retry policy.
func New(tr Repo) *Service {
	return NewWithRetry(tr, DefaultMaxAttempts, DefaultRetryBackoff)
}

// NewWithRetry returns transfer service struct with the given retry policy.
// Non-positive values fall back to the defaults.
func NewWithRetry(tr Repo, maxAttempts int, retryBackoff time.Duration) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	if retryBackoff <= 0 {
		retryBackoff = DefaultRetryBackoff
	}

	return &Service{
		repo:         tr,
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,
	}
}

// Transfer validates the request and then moves the amount between the two
// accounts as one atomic unit, retrying on contention.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	amount, err := validAmount(ctx, arg.Amount)
	if err != nil {
		return result, err
	}

	arg.Amount = amount

	if arg.FromAccountID == arg.ToAccountID {
		return result, domain.ErrSameAccount
	}

	err = s.withRetry(ctx, func() error {
		var err error
		result, err = s.repo.TransferTx(ctx, arg)
		return err
	})

	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// Deposit credits the account by the given amount.
func (s *Service) Deposit(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	var result domain.BalanceTxResult

	amount, err := validAmount(ctx, amount)
	if err != nil {
		return result, err
	}

	err = s.withRetry(ctx, func() error {
		var err error
		result, err = s.repo.DepositTx(ctx, accountID, amount)
		return err
	})

	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// Withdraw debits the account by the given amount.
func (s *Service) Withdraw(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error) {
	var result domain.BalanceTxResult

	amount, err := validAmount(ctx, amount)
	if err != nil {
		return result, err
	}

	err = s.withRetry(ctx, func() error {
		var err error
		result, err = s.repo.WithdrawTx(ctx, accountID, amount)
		return err
	})

	if err != nil {
		return domain.BalanceTxResult{}, err
	}

	return result, nil
}

// withRetry runs one attempt of an atomic unit and restarts it on
// domain.ErrConflict until the budget is exhausted. Business errors pass
// through untouched on the first occurrence.
func (s *Service) withRetry(ctx context.Context, attempt func() error) error {
	l := zerolog.Ctx(ctx)

	backoff := s.retryBackoff

	for n := 1; ; n++ {
		err := attempt()
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return err
		}

		if n >= s.maxAttempts {
			l.Warn().Int("attempts", n).Msg("retry budget exhausted on conflicting transactions")
			return domain.ErrTooManyConflicts
		}

		l.Info().Int("attempt", n).Dur("backoff", backoff).Msg("conflicting transaction, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
	}
}

// validAmount parses the amount and returns its canonical form, so the repo
// never sees client spellings like "+100" or "100.50" that would corrupt the
// negated debit delta.
func validAmount(ctx context.Context, amount string) (string, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return "", domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return "", domain.ErrNonPositiveAmount
	}

	return amountDecimal.String(), nil
}
