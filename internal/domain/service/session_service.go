// Package service defines the domain service contracts implemented by the
// infrastructure layer.
package service

import (
	"time"

	"velo/internal/domain/entity"
)

// SessionClaims is the verified content of a session credential.
type SessionClaims struct {
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionService mints and verifies the signed session credential carried
// in the session cookie. Verification is a pure function of
// (token, secret, current time): it performs no network or store I/O, so
// it can run on every request ahead of all page logic.
type SessionService interface {
	// Issue signs a credential for the authenticated identity with a
	// fixed expiry.
	Issue(identity entity.Identity) (string, error)

	// Verify checks structure, signature and expiry of a credential and
	// returns its claims. Any failure means the caller must
	// re-authenticate; the reasons are not distinguished.
	Verify(token string) (*SessionClaims, error)
}
