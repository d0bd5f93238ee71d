package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/repository"
	"velo/internal/domain/service"
	"velo/internal/usecase"
)

// providerService implements the ProviderUsecase interface.
type providerService struct {
	txManager    repository.TransactionManager
	provider     service.ProviderService
	tokenManager usecase.TokenManager
	logger       *slog.Logger
}

// ProviderServiceParams holds dependencies for providerService, injected by Fx.
type ProviderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Provider     service.ProviderService
	TokenManager usecase.TokenManager
	Logger       *slog.Logger
}

// NewProviderService is the constructor for providerService.
func NewProviderService(params ProviderServiceParams) usecase.ProviderUsecase {
	return &providerService{
		txManager:    params.TxManager,
		provider:     params.Provider,
		tokenManager: params.TokenManager,
		logger:       params.Logger,
	}
}

// ConnectURL returns the provider's authorization URL.
func (s *providerService) ConnectURL() string {
	return s.provider.AuthCodeURL()
}

// HandleCallback exchanges the authorization code and persists the user
// and token rows in one transaction, so a half-written link can never be
// observed.
func (s *providerService) HandleCallback(ctx context.Context, userEmail, code string) error {
	if code == "" {
		return domainerrors.ErrMissingAuthCode
	}

	pair, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return errors.WithStack(err)
	}

	now := time.Now().UTC()
	err = s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user := &entity.User{
			ID:        uuid.New(),
			Email:     userEmail,
			CreatedAt: now,
		}
		if err := factory.NewUserRepository().Upsert(ctx, user); err != nil {
			return err
		}

		token := &entity.OAuthToken{
			UserEmail:    userEmail,
			Provider:     s.provider.Provider(),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
		}

		return factory.NewTokenRepository().Upsert(ctx, token)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	s.logger.Info("provider account linked",
		slog.String("email", userEmail),
		slog.String("provider", s.provider.Provider()),
	)

	return nil
}

// Activities ensures a valid access token and returns the raw listing.
func (s *providerService) Activities(ctx context.Context, userEmail string) (json.RawMessage, error) {
	accessToken, err := s.tokenManager.EnsureValidToken(ctx, userEmail)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	activities, err := s.provider.Activities(ctx, accessToken)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return activities, nil
}
