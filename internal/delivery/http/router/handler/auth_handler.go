// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"velo/internal/infra/auth"
	"velo/internal/usecase"
)

// AuthHandler holds dependencies for the site-owner login flow.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Login redirects to the identity provider's authorization URL.
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.uc.LoginURL())
}

// Callback exchanges the authorization code, sets the session cookie and
// returns to the site root. A failed exchange surfaces through the error
// middleware; no session cookie is ever set on failure.
func (h *AuthHandler) Callback(c echo.Context) error {
	out, err := h.uc.HandleCallback(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(auth.NewSessionCookie(out.SessionToken))

	return c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie and redirects to the identity
// provider's logout URL. The credential itself stays valid until its
// expiry; clearing the cookie is all the revocation this design has.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearSessionCookie())

	return c.Redirect(http.StatusFound, h.uc.LogoutURL())
}
