package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// RegisterCustomer registers the ticket lifecycle endpoints under /v1.
// Buying and attending require the CUSTOMER role; the user profile and
// watch-history reads accept managers too, with the ownership check
// enforced in the handler (customers only see themselves).
func RegisterCustomer(e *echo.Echo, t *handler.TicketHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/tickets", t.Buy)
	g.POST("/sessions/:id/attend", t.Attend)

	users := e.Group(
		"/v1/users",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleManager),
	)
	users.GET("/:id", t.GetUser)
	users.GET("/:id/watch-history", t.WatchHistory)
}
