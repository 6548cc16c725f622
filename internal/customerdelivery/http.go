// Package customerdelivery manages delivery layer of the customer directory.
package customerdelivery

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

// CustomerService provides the customer directory reads.
//
//go:generate mockgen -source http.go -destination http_mock.go -package customerdelivery
type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
}

// AccountService provides the per-customer account listing.
type AccountService interface {
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Account, error)
}

// Handler facilitates customer delivery layer logic.
type Handler struct {
	customers CustomerService
	accounts  AccountService
}

// NewHandler returns customer handler.
func NewHandler(cs CustomerService, as AccountService) *Handler {
	return &Handler{
		customers: cs,
		accounts:  as,
	}
}

type listCustomersData struct {
	Customers []domain.Customer `json:"customers"`
}

// List handles http request to list all customers.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	customers, err := h.customers.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := web.Response{
		Data: listCustomersData{Customers: customers},
	}

	gctx.JSON(http.StatusOK, res)
}

type listAccountsRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type listAccountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

// ListAccounts handles http request to list all accounts of a customer.
func (h *Handler) ListAccounts(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listAccountsRequest
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

	accounts, err := h.accounts.ListByCustomer(ctx, req.ID)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: listAccountsData{Accounts: accounts},
	}

	gctx.JSON(http.StatusOK, res)
}
