package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// newContext builds an echo context for a request that already passed
// JWTAuth, with the given authenticated user and role in place.
func newContext(e *echo.Echo, method, path string, userID float64, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func TestWatchHistoryDeniedForOtherCustomer(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/v1/users/5/watch-history", 1, model.RoleCustomer)
	c.SetPath("/v1/users/:id/watch-history")
	c.SetParamNames("id")
	c.SetParamValues("5")

	// Repositories stay nil: a denied request must return before any of
	// them is touched.
	h := &TicketHandler{}
	err := h.WatchHistory(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Empty(t, rec.Body.String(), "nothing may be written before the refusal")

	e.HTTPErrorHandler(err, c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
}

func TestGetUserDeniedForOtherCustomer(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/v1/users/5", 1, model.RoleCustomer)
	c.SetPath("/v1/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")

	h := &TicketHandler{}
	err := h.GetUser(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAuthorizeUserAccess(t *testing.T) {
	e := echo.New()
	h := &TicketHandler{}

	t.Run("customer reads self", func(t *testing.T) {
		c, _ := newContext(e, http.MethodGet, "/v1/users/1", 1, model.RoleCustomer)
		assert.NoError(t, h.authorizeUserAccess(c, 1))
	})

	t.Run("manager reads anyone", func(t *testing.T) {
		c, _ := newContext(e, http.MethodGet, "/v1/users/5", 1, model.RoleManager)
		assert.NoError(t, h.authorizeUserAccess(c, 5))
	})

	t.Run("missing identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/users/5", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		var he *echo.HTTPError
		require.ErrorAs(t, h.authorizeUserAccess(c, 5), &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestAttendUnknownSessionReportsTicketNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := &TicketHandler{
		Engine:   booking.New(time.UTC),
		Tickets:  repository.NewTicketRepo(db),
		Sessions: repository.NewSessionRepo(db),
		Movies:   repository.NewMovieRepo(db),
		Users:    repository.NewUserRepo(db),
	}

	// The only query the handler may run is the ticket lookup; the
	// caller holds no ticket, and the session table is never consulted.
	mock.ExpectQuery("FROM tickets").
		WithArgs(1, 99).
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	c, rec := newContext(e, http.MethodPost, "/v1/sessions/99/attend", 1, model.RoleCustomer)
	c.SetPath("/v1/sessions/:id/attend")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.Attend(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), booking.ErrTicketNotFound.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
