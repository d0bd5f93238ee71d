package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"velo/internal/delivery/http/response"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/domain/service"
	"velo/internal/infra/auth"
)

// claimsContextKey stores verified session claims on the echo context.
const claimsContextKey = "sessionClaims"

// LoginPath is where every unauthenticated page request converges.
const LoginPath = "/auth/login"

// SessionMiddleware is the route gate. It resolves the session cookie into
// verified claims using only the signing secret and the clock; it performs
// no network or store I/O, so it can run on every protected request ahead
// of all page logic. The login, callback and logout routes are simply not
// registered behind it, which breaks the redirect loop.
type SessionMiddleware struct {
	sessions service.SessionService
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions service.SessionService, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, logger: logger}
}

// Resolve extracts and verifies the session cookie of the request. The
// callers decide how to answer an invalid session; missing cookie, bad
// signature and expired credential are deliberately indistinguishable.
func (m *SessionMiddleware) Resolve(c echo.Context) (*service.SessionClaims, error) {
	cookie, err := c.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, domainerrors.ErrSessionInvalid
	}

	claims, err := m.sessions.Verify(cookie.Value)
	if err != nil {
		m.logger.Debug("session verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrSessionInvalid
	}

	return claims, nil
}

// Gate protects page routes: an invalid session redirects to login
// instead of rendering an error, so every unauthenticated path converges
// back to the login flow.
func (m *SessionMiddleware) Gate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.Resolve(c)
		if err != nil {
			return c.Redirect(http.StatusFound, LoginPath)
		}

		c.Set(claimsContextKey, claims)

		return next(c)
	}
}

// Require protects JSON endpoints: an invalid session answers 401 with a
// structured error body rather than a redirect.
func (m *SessionMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.Resolve(c)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrSessionInvalid.ErrorCode(),
				domainerrors.ErrSessionInvalid.Message())
		}

		c.Set(claimsContextKey, claims)

		return next(c)
	}
}

// ClaimsFrom returns the verified session claims set by Gate or Require.
func ClaimsFrom(c echo.Context) (*service.SessionClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(*service.SessionClaims)

	return claims, ok
}
