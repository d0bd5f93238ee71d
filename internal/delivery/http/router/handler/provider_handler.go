package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"velo/internal/delivery/http/middleware"
	domainerrors "velo/internal/domain/errors"
	"velo/internal/usecase"
)

// ProviderHandler holds dependencies for linking the external activity
// provider and fetching its data.
type ProviderHandler struct {
	uc       usecase.ProviderUsecase
	sessions *middleware.SessionMiddleware
	logger   *slog.Logger
}

// NewProviderHandler is the constructor for ProviderHandler, injected by Fx.
func NewProviderHandler(
	uc usecase.ProviderUsecase,
	sessions *middleware.SessionMiddleware,
	logger *slog.Logger,
) *ProviderHandler {
	return &ProviderHandler{uc: uc, sessions: sessions, logger: logger}
}

// Connect redirects to the provider's authorization URL. The route sits
// behind the session gate, so only a logged-in user reaches it.
func (h *ProviderHandler) Connect(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.uc.ConnectURL())
}

// Callback receives the provider's authorization code. The code check runs
// before the session check so a malformed callback reports 400 even when
// the browser arrives without a session; only a well-formed callback gets
// bounced to the login page.
func (h *ProviderHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return errors.WithStack(domainerrors.ErrMissingAuthCode)
	}

	claims, err := h.sessions.Resolve(c)
	if err != nil {
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	}

	if err := h.uc.HandleCallback(c.Request().Context(), claims.Email, code); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, "/")
}

// Activities returns the provider's recent activity feed verbatim. The
// route sits behind the API session check, so claims are always present.
func (h *ProviderHandler) Activities(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrSessionInvalid)
	}

	data, err := h.uc.Activities(c.Request().Context(), claims.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSONBlob(http.StatusOK, data)
}
