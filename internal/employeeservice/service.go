// Package employeeservice manages business logic layer of employee authentication.
package employeeservice

import (
	"context"
	"time"

	"github.com/bankcore/ledger/internal/domain"
	"github.com/bankcore/ledger/pkg/passpkg"
	"github.com/bankcore/ledger/pkg/tokenpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by employee service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package employeeservice
type Repo interface {
	GetByUsername(ctx context.Context, username string) (domain.Employee, error)
}

// Service facilitates employee authentication logic.
type Service struct {
	repo Repo

	// TokenMaker is exposed for the auth middleware wired in the same server.
	TokenMaker          tokenpkg.Maker
	accessTokenDuration time.Duration
}

// New returns employee service struct.
func New(er Repo, tokenMaker tokenpkg.Maker, accessTokenDuration time.Duration) *Service {
	return &Service{
		repo:                er,
		TokenMaker:          tokenMaker,
		accessTokenDuration: accessTokenDuration,
	}
}

// Login verifies the employee credentials and issues an access token carrying
// the employee's role.
func (s *Service) Login(ctx context.Context, username, password string) (string, *tokenpkg.Payload, error) {
	l := zerolog.Ctx(ctx)

	employee, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if err := passpkg.Check(password, employee.HashedPassword); err != nil {
		l.Info().Err(err).Send()
		return "", nil, domain.ErrWrongPassword
	}

	accessToken, payload, err := s.TokenMaker.CreateToken(employee.Username, employee.Role, s.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", nil, err
	}

	return accessToken, payload, nil
}
