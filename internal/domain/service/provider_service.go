package service

import (
	"context"
	"encoding/json"

	"velo/internal/domain/entity"
)

// ProviderService is the OAuth2 client for the fitness-data provider: the
// authorize redirect, the code and refresh exchanges against its token
// endpoint, and the activity listing resource call.
type ProviderService interface {
	// Provider returns the provider key stored in token rows.
	Provider() string

	// AuthCodeURL returns the provider's authorization URL for the
	// connect redirect.
	AuthCodeURL() string

	// Exchange trades an authorization code for the initial token pair.
	Exchange(ctx context.Context, code string) (*entity.TokenPair, error)

	// Refresh trades a refresh token for a new token pair. A rejection
	// surfaces as ErrTokenRefresh; the caller must not retry within the
	// same request.
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// Activities fetches the paginated activity listing with a bounded
	// page size and returns the raw collection unmodified.
	Activities(ctx context.Context, accessToken string) (json.RawMessage, error)
}
