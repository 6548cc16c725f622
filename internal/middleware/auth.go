package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/tokenpkg"
	"github.com/bankcore/ledger/pkg/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Keys and header constants used by the auth middleware.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Errors returned to the client by the auth middleware.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	ErrPermissionDenied    = errors.New("permission denied")
)

// AddAuthorization creates and sets a bearer token on the request. Test helper.
func AddAuthorization(
	t *testing.T,
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	username string,
	role string,
	duration time.Duration,
) {
	token, _, err := tokenMaker.CreateToken(username, role, duration)
	require.NoError(t, err)

	authHeader := fmt.Sprintf("%s %s", authType, token)
	request.Header.Set(AuthHeaderKey, authHeader)
}

// AuthMiddleware verifies the bearer token and stores the payload on the
// request context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}

// RequireRole enforces the minimum role required by a route. Roles form a
// hierarchy, so an admin passes a manager check and a manager passes a teller
// check. Must run after AuthMiddleware.
func RequireRole(required string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		if !domain.RoleAtLeast(payload.Role, required) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrPermissionDenied))

			return
		}

		ctx.Next()
	}
}
