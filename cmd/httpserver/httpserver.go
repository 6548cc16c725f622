// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bankcore/ledger/internal/accountdelivery"
	"github.com/bankcore/ledger/internal/accountrepo"
	"github.com/bankcore/ledger/internal/accountservice"
	"github.com/bankcore/ledger/internal/customerdelivery"
	"github.com/bankcore/ledger/internal/customerrepo"
	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/employeedelivery"
	"github.com/bankcore/ledger/internal/employeerepo"
	"github.com/bankcore/ledger/internal/employeeservice"
	"github.com/bankcore/ledger/internal/entryrepo"
	"github.com/bankcore/ledger/internal/historydelivery"
	"github.com/bankcore/ledger/internal/historyservice"
	"github.com/bankcore/ledger/internal/middleware"
	"github.com/bankcore/ledger/internal/transferdelivery"
	"github.com/bankcore/ledger/internal/transferrepo"
	"github.com/bankcore/ledger/internal/transferservice"
	"github.com/bankcore/ledger/pkg/accounttypepkg"
	"github.com/bankcore/ledger/pkg/configpkg"
	"github.com/bankcore/ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	customerRepo := customerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	employeeRepo := employeerepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(accountRepo, customerRepo)
	transferService := transferservice.NewWithRetry(transferRepo, config.TransferMaxAttempts, config.TransferRetryBackoff)
	historyService := historyservice.New(entryRepo, accountRepo)
	employeeService := employeeservice.New(employeeRepo, tokenMaker, config.AccessTokenDuration)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	historyHandler := historydelivery.NewHandler(historyService)
	customerHandler := customerdelivery.NewHandler(customerRepo, accountService)
	employeeHandler := employeedelivery.NewHandler(employeeService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/login", employeeHandler.Login)

	authRoutes := engine.Group("/", middleware.AuthMiddleware(employeeService.TokenMaker))

	authRoutes.GET("/customers", middleware.RequireRole(domain.RoleAdmin), customerHandler.List)
	authRoutes.GET("/customers/:id/accounts", middleware.RequireRole(domain.RoleAdmin), customerHandler.ListAccounts)

	authRoutes.POST("/accounts", middleware.RequireRole(domain.RoleManager), accountHandler.Create)
	authRoutes.GET("/accounts/:id/balance", middleware.RequireRole(domain.RoleTeller), accountHandler.GetBalance)
	authRoutes.GET("/accounts/:id/transactions", middleware.RequireRole(domain.RoleManager), historyHandler.List)

	authRoutes.POST("/accounts/deposit", middleware.RequireRole(domain.RoleTeller), transferHandler.Deposit)
	authRoutes.POST("/accounts/withdraw", middleware.RequireRole(domain.RoleTeller), transferHandler.Withdraw)

	authRoutes.POST("/transfers", middleware.RequireRole(domain.RoleManager), transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("accounttype", accounttypepkg.ValidAccountType)
		if err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
