// Package transferdelivery manages delivery layer of money movements.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/bankcore/ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	Deposit(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
	Withdraw(ctx context.Context, accountID int32, amount string) (domain.BalanceTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type transferRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

type transferData struct {
	Timestamp time.Time `json:"timestamp"`
}

// Create handles http request to transfer money between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	arg := domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceError(gctx, err)

		return
	}

	res := web.Response{
		Data: transferData{Timestamp: result.Entry.CreatedAt},
	}

	gctx.JSON(http.StatusOK, res)
}

type balanceChangeRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required"`
}

type balanceChangeData struct {
	Amount     string `json:"amount"`
	AccountID  int32  `json:"account_id"`
	NewBalance string `json:"new_balance"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req balanceChangeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	result, err := h.service.Deposit(ctx, req.AccountID, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceError(gctx, err)

		return
	}

	res := web.Response{
		Data: balanceChangeData{
			AccountID:  result.Account.ID,
			Amount:     result.Entry.Amount,
			NewBalance: result.Account.Balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req balanceChangeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	result, err := h.service.Withdraw(ctx, req.AccountID, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		writeServiceError(gctx, err)

		return
	}

	res := web.Response{
		Data: balanceChangeData{
			AccountID:  result.Account.ID,
			Amount:     result.Entry.Amount,
			NewBalance: result.Account.Balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

func bindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

// writeServiceError maps engine outcomes to response categories: business
// failures are client errors, missing accounts are not found, exhausted
// retries and store failures are server errors with a generic message.
func writeServiceError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrNonPositiveAmount,
		domain.ErrSameAccount,
		domain.ErrInsufficientBalance:
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))

		return
	case domain.ErrTooManyConflicts:
		gctx.JSON(http.StatusInternalServerError, web.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}
