// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/errorspkg"
	"github.com/bankcore/ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type createRequest struct {
	CustomerID     int32  `json:"customer_id" binding:"required,min=1"`
	AccountType    string `json:"account_type" binding:"required,accounttype"`
	InitialDeposit string `json:"initial_deposit" binding:"required"`
}

type createData struct {
	AccountID  int32 `json:"account_id"`
	CustomerID int32 `json:"customer_id"`
}

// Create handles http request to create an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
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

		return
	}

	arg := domain.CreateAccountParams{
		CustomerID:     req.CustomerID,
		AccountType:    req.AccountType,
		InitialDeposit: req.InitialDeposit,
	}

	account, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount,
			domain.ErrNegativeInitialDeposit,
			domain.ErrUnsupportedAccountType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: createData{
			AccountID:  account.ID,
			CustomerID: account.CustomerID,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type getBalanceRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type balanceData struct {
	CustomerID int32  `json:"customer_id"`
	AccountID  int32  `json:"account_id"`
	Balance    string `json:"balance"`
}

// GetBalance handles http request to get the balance of an account.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getBalanceRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

		return
	}

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: balanceData{
			CustomerID: account.CustomerID,
			AccountID:  account.ID,
			Balance:    account.Balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
