package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"velo/internal/delivery/http/middleware"
	"velo/internal/delivery/http/response"
)

// SiteHandler serves the gated site root and the health probe.
type SiteHandler struct{}

// NewSiteHandler is the constructor for SiteHandler, injected by Fx.
func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// Home greets the logged-in user. The route sits behind the session gate.
func (h *SiteHandler) Home(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"email": claims.Email,
		"name":  claims.Name,
	}, "Welcome back")
}

// Health reports process liveness.
func (h *SiteHandler) Health(c echo.Context) error {
	return response.Success(c, http.StatusOK, echo.Map{"status": "ok"}, "")
}
