// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"velo/internal/delivery/http/middleware"
	"velo/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	ProviderHandler   *handler.ProviderHandler
	SiteHandler       *handler.SiteHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	providerHandler   *handler.ProviderHandler
	siteHandler       *handler.SiteHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		providerHandler:   params.ProviderHandler,
		siteHandler:       params.SiteHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", r.siteHandler.Health)

	// Pages: browsers get redirected to login when the session is absent.
	e.GET("/", r.siteHandler.Home, r.sessionMiddleware.Gate)

	// Auth routes stay open; they are how a session gets created.
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/login", r.authHandler.Login)
		authGroup.GET("/callback", r.authHandler.Callback)
		authGroup.GET("/logout", r.authHandler.Logout)
	}

	providerGroup := e.Group("/provider")
	{
		providerGroup.GET("/connect", r.providerHandler.Connect, r.sessionMiddleware.Gate)
		// The callback validates its code before looking at the session,
		// so it checks the session inside the handler instead of here.
		providerGroup.GET("/callback", r.providerHandler.Callback)
		providerGroup.GET("/activities", r.providerHandler.Activities, r.sessionMiddleware.Require)
	}
}
