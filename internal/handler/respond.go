// Package handler defines the HTTP handlers of the booking API.
// Handlers orchestrate repositories and the booking engine: they load
// snapshots, ask the engine for a decision, apply the resulting writes
// inside a transaction and shape the response.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

// bookingError translates an engine or repository error into the HTTP
// response.  The closed taxonomy maps by category; anything outside it
// is an infrastructure failure and reports as a plain 500 without
// leaking driver details.
func bookingError(c echo.Context, err error) error {
	switch booking.Categorize(err) {
	case booking.CategoryNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case booking.CategoryConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case booking.CategoryBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, schedule.ErrInvalidTimeRange) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// getUserID extracts the authenticated user id that JWTAuth stored in
// the context.  JWT numeric claims decode as float64, so several
// shapes are tolerated.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the authenticated role from the context.
func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD request field.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// formatDate renders a session date for responses and events.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
