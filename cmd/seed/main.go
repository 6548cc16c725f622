// Command seed populates a fresh database with the initial employees and
// sample customers, so a new deployment has logins to start from. Existing
// records are left unchanged, so the command is safe to re-run.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/bankcore/ledger/internal/customerrepo"
	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/internal/employeerepo"
	"github.com/bankcore/ledger/internal/middleware"
	"github.com/bankcore/ledger/pkg/configpkg"
	"github.com/bankcore/ledger/pkg/dbpkg"
	"github.com/bankcore/ledger/pkg/passpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	ctx := logger.WithContext(context.Background())

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	employeeRepo := employeerepo.NewRepoPGS(conn)

	employees := []struct {
		username string
		password string
		role     string
	}{
		{"John Doe", "password1", domain.RoleManager},
		{"Jane Smith", "password2", domain.RoleTeller},
		{"admin", "password3", domain.RoleAdmin},
	}

	for _, e := range employees {
		_, err := employeeRepo.GetByUsername(ctx, e.username)
		if err == nil {
			logger.Info().Str("username", e.username).Msg("employee already seeded")
			continue
		}

		if err != domain.ErrEmployeeNotFound {
			logger.Fatal().Err(err).Str("username", e.username).Msg("cannot look up employee")
		}

		hashedPassword, err := passpkg.Hash(e.password)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot hash password")
		}

		if _, err := employeeRepo.Create(ctx, e.username, hashedPassword, e.role); err != nil {
			logger.Fatal().Err(err).Str("username", e.username).Msg("cannot create employee")
		}

		logger.Info().Str("username", e.username).Str("role", e.role).Msg("employee seeded")
	}

	customerRepo := customerrepo.NewRepoPGS(conn)

	existing, err := customerRepo.List(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot list customers")
	}

	if len(existing) > 0 {
		logger.Info().Int("count", len(existing)).Msg("customers already seeded")
		return
	}

	for _, name := range []string{"Alice", "Bob"} {
		customer, err := customerRepo.Create(ctx, name)
		if err != nil {
			logger.Fatal().Err(err).Str("name", name).Msg("cannot create customer")
		}

		logger.Info().Int32("id", customer.ID).Str("name", customer.Name).Msg("customer seeded")
	}
}
