// Package employeedelivery manages delivery layer of employee authentication.
package employeedelivery

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
	"github.com/bankcore/ledger/pkg/tokenpkg"
	"github.com/bankcore/ledger/pkg/web"
)

// Service provides service layer interface needed by employee delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package employeedelivery
type Service interface {
	Login(ctx context.Context, username, password string) (string, *tokenpkg.Payload, error)
}

// Handler facilitates employee delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns employee handler.
func NewHandler(es Service) *Handler {
	return &Handler{service: es}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login handles http request to authenticate an employee.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
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

	accessToken, payload, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrEmployeeNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt.Format(time.RFC3339),
	}

	gctx.JSON(http.StatusOK, res)
}
