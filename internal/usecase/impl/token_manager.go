package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"

	"velo/internal/domain/entity"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/repository"
	"velo/internal/domain/service"
	"velo/internal/usecase"
)

// tokenManager implements the TokenManager interface. Refreshes are
// coalesced per (userEmail, provider) key: with a provider that rotates
// refresh tokens on every use, two racing refreshes would leave one caller
// holding an invalidated refresh token, so at most one exchange is in
// flight at a time and concurrent callers wait on its result.
type tokenManager struct {
	tokenRepo repository.TokenRepository
	provider  service.ProviderService
	logger    *slog.Logger

	refreshGroup singleflight.Group
}

// TokenManagerParams holds dependencies for tokenManager, injected by Fx.
type TokenManagerParams struct {
	fx.In

	TokenRepo repository.TokenRepository
	Provider  service.ProviderService
	Logger    *slog.Logger
}

// NewTokenManager is the constructor for tokenManager.
func NewTokenManager(params TokenManagerParams) usecase.TokenManager {
	return &tokenManager{
		tokenRepo: params.TokenRepo,
		provider:  params.Provider,
		logger:    params.Logger,
	}
}

// EnsureValidToken returns a currently-valid access token for the user.
func (m *tokenManager) EnsureValidToken(ctx context.Context, userEmail string) (string, error) {
	provider := m.provider.Provider()

	token, err := m.tokenRepo.Find(ctx, userEmail, provider)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return "", domainerrors.ErrNoLinkedAccount
		}

		return "", errors.WithStack(err)
	}

	// Still valid: hand back the stored token, no network involved.
	if !token.Expired(time.Now()) {
		return token.AccessToken, nil
	}

	accessToken, err, _ := m.refreshGroup.Do(userEmail+"|"+provider, func() (any, error) {
		return m.refresh(ctx, token)
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	return accessToken.(string), nil
}

// refresh performs one refresh exchange and persists the new pair. On
// rejection the stored record is left untouched; the caller surfaces the
// failure instead of retrying within the same request.
func (m *tokenManager) refresh(ctx context.Context, stale *entity.OAuthToken) (string, error) {
	pair, err := m.provider.Refresh(ctx, stale.RefreshToken)
	if err != nil {
		return "", errors.WithStack(err)
	}

	renewed := &entity.OAuthToken{
		UserEmail:    stale.UserEmail,
		Provider:     stale.Provider,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
	if err := m.tokenRepo.Upsert(ctx, renewed); err != nil {
		return "", errors.WithStack(err)
	}

	m.logger.Info("provider token refreshed",
		slog.String("email", stale.UserEmail),
		slog.String("provider", stale.Provider),
		slog.Time("expiresAt", pair.ExpiresAt),
	)

	return pair.AccessToken, nil
}
