// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/service"
	"velo/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	identity service.IdentityService
	session  service.SessionService
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Identity service.IdentityService
	Session  service.SessionService
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identity: params.Identity,
		session:  params.Session,
		logger:   params.Logger,
	}
}

// LoginURL returns the identity provider's authorization URL.
func (s *authService) LoginURL() string {
	return s.identity.AuthCodeURL()
}

// LogoutURL returns the identity provider's logout URL.
func (s *authService) LogoutURL() string {
	return s.identity.LogoutURL()
}

// HandleCallback exchanges the authorization code for an identity and
// mints a session credential. A failed exchange never issues a session.
func (s *authService) HandleCallback(ctx context.Context, code string) (*usecase.LoginCallbackOutput, error) {
	if code == "" {
		return nil, domainerrors.ErrMissingAuthCode
	}

	identity, err := s.identity.Exchange(ctx, code)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	token, err := s.session.Issue(*identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session credential")
	}

	s.logger.Info("session issued", slog.String("email", identity.Email))

	return &usecase.LoginCallbackOutput{SessionToken: token}, nil
}
