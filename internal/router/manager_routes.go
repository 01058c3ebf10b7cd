package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// RegisterManager registers MANAGER-scoped endpoints under /v1.  All
// routes require a valid JWT and the MANAGER role.  Managers maintain
// the catalogue: movies, their session schedules and the bulk
// operations.
func RegisterManager(e *echo.Echo, m *handler.MovieHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleManager),
	)

	// ---- Movies ----
	g.POST("/movies", m.Create)
	g.PUT("/movies/:id", m.Update)
	g.PATCH("/movies/:id", m.Update) // partial updates ride the same handler
	g.DELETE("/movies/:id", m.Delete)

	// ---- Bulk ----
	g.POST("/movies/bulk", m.BulkCreate)
	g.DELETE("/movies/bulk", m.BulkDelete)

	// ---- Sessions ----
	// Listing a movie's sessions is handled by the public browse API
	// (GET /v1/movies/:id/sessions); only the batch append is
	// manager-scoped.
	g.POST("/movies/:id/sessions", m.AddSessions)
}
