package usecase

import (
	"context"
	"encoding/json"
)

// ProviderUsecase drives the fitness-provider link: the connect redirect,
// the callback that persists the initial grant, and the gated activity
// listing.
type ProviderUsecase interface {
	// ConnectURL returns the provider's authorization URL.
	ConnectURL() string

	// HandleCallback exchanges an authorization code for the initial
	// token pair and persists the user and token rows atomically.
	// ErrMissingAuthCode when code is empty; ErrProviderExchange when
	// the provider rejects the code.
	HandleCallback(ctx context.Context, userEmail, code string) error

	// Activities returns the raw activity listing for the user, ensuring
	// a currently-valid access token first. ErrNoLinkedAccount when the
	// user never connected the provider; ErrTokenRefresh when an expired
	// grant cannot be renewed.
	Activities(ctx context.Context, userEmail string) (json.RawMessage, error)
}

// TokenManager guarantees that any caller needing provider data holds a
// currently-valid access token, refreshing and persisting expired grants
// on demand.
type TokenManager interface {
	// EnsureValidToken returns a valid access token for the user. A
	// stored token that has not expired is returned unchanged with zero
	// network calls; an expired one triggers exactly one refresh
	// exchange, coalesced across concurrent callers. On refresh
	// rejection the stored record is left untouched.
	EnsureValidToken(ctx context.Context, userEmail string) (string, error)
}
