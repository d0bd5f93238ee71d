package service

import (
	"context"

	"velo/internal/domain/entity"
)

// IdentityService talks to the external identity provider used for
// site-owner login. It is stateless; each exchange is one-shot because an
// authorization code is single-use.
type IdentityService interface {
	// AuthCodeURL returns the provider's authorization URL for the login
	// redirect.
	AuthCodeURL() string

	// LogoutURL returns the provider's logout URL with the return target.
	LogoutURL() string

	// Exchange trades an authorization code for an identity assertion.
	// A rejected exchange surfaces as ErrIdentityExchange and must not be
	// retried with the same code.
	Exchange(ctx context.Context, code string) (*entity.Identity, error)
}
