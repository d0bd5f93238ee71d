// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"velo/config"
	"velo/internal/domain/entity"
	"velo/internal/domain/service"
)

// sessionTTL is the fixed lifetime of a session credential. There is no
// server-side session table, so a credential cannot be revoked before this
// expiry elapses.
const sessionTTL = 8 * time.Hour

// sessionClaims is the wire shape of the session credential.
type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// sessionService implements service.SessionService using HS256 JWTs.
type sessionService struct {
	secret []byte
}

// NewSessionService is the constructor for sessionService. The signing
// secret is injected from configuration so issuer and verifier share one
// value read once at startup.
func NewSessionService(cfg *config.Config) (service.SessionService, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &sessionService{secret: []byte(cfg.Session.Secret)}, nil
}

// Issue signs a credential for the authenticated identity, valid for
// sessionTTL from now.
func (s *sessionService) Issue(identity entity.Identity) (string, error) {
	if identity.Email == "" {
		return "", errors.New("identity email is required")
	}

	now := time.Now()
	claims := sessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session credential")
	}

	return token, nil
}

// Verify checks structure, signature and expiry and returns the claims.
// It touches nothing but the token, the secret and the clock.
func (s *sessionService) Verify(token string) (*service.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify session credential")
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session claims")
	}
	if claims.Email == "" {
		return nil, errors.New("session credential missing email")
	}

	return &service.SessionClaims{
		Email:     claims.Email,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
