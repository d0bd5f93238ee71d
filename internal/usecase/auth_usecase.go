// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Output DTOs ---

// LoginCallbackOutput returns the signed session credential to set on the
// client after a successful login.
type LoginCallbackOutput struct {
	SessionToken string
}

// AuthUsecase drives the site-owner login flow: redirect to the identity
// provider, exchange the returned code for a session credential, and build
// the provider logout target.
type AuthUsecase interface {
	// LoginURL returns the identity provider's authorization URL.
	LoginURL() string

	// HandleCallback exchanges an authorization code and mints a session
	// credential. ErrMissingAuthCode when code is empty;
	// ErrIdentityExchange when the provider rejects the code.
	HandleCallback(ctx context.Context, code string) (*LoginCallbackOutput, error)

	// LogoutURL returns the identity provider's logout URL.
	LogoutURL() string
}
