// Package router defines how HTTP routes are registered for the API.
// Each Register* function wires one slice of the surface: health,
// auth, the public catalogue, manager mutations and customer ticket
// operations.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations (register, login, refresh, logout) live
// under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh_token in the body and invalidates it; no
	// JWT is required so a client with an expired access token can still
	// end its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// logout-all needs a valid access token because no refresh token is
	// presented; it revokes every active session of the caller.
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated browse endpoints of the
// movie catalogue.  The optional middleware (rate limiting, response
// cache) is applied to this group only, so authenticated mutations are
// never served from cache.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/movies", m.List)
	g.GET("/movies/:id", m.Get)
	g.GET("/movies/:id/sessions", m.ListSessions)
}
