package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

// MovieHandler serves the movie catalogue: public reads plus the
// manager-only mutations that keep movies and their sessions in sync.
type MovieHandler struct {
	Movies   *repository.MovieRepo
	Sessions *repository.SessionRepo
}

func NewMovieHandler(m *repository.MovieRepo, s *repository.SessionRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Sessions: s}
}

// ----- DTOs -----

// sessionEditReq is one element of a session edit batch.  A nil ID
// means "create"; a set ID means "update these fields".  time_slot
// accepts either the enum name (SLOT_10_12) or the wall-clock range
// ("10:00-12:00").
type sessionEditReq struct {
	ID         *uint64 `json:"id"`
	Date       *string `json:"date"`
	TimeSlot   *string `json:"time_slot"`
	RoomNumber *uint32 `json:"room_number"`
	MovieID    *uint64 `json:"movie_id"`
}

type createMovieReq struct {
	Name           string           `json:"name"`
	AgeRestriction uint8            `json:"age_restriction"`
	Sessions       []sessionEditReq `json:"sessions"`
}

type updateMovieReq struct {
	Name           *string          `json:"name"`
	AgeRestriction *uint8           `json:"age_restriction"`
	Sessions       []sessionEditReq `json:"sessions"`
}

type bulkCreateMoviesReq struct {
	Movies []createMovieReq `json:"movies"`
}

type bulkDeleteMoviesReq struct {
	IDs []uint64 `json:"ids"`
}

type sessionResp struct {
	ID         uint64 `json:"id"`
	MovieID    uint64 `json:"movie_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	RoomNumber uint32 `json:"room_number"`
}

type movieResp struct {
	ID             uint64        `json:"id"`
	Name           string        `json:"name"`
	AgeRestriction uint8         `json:"age_restriction"`
	Sessions       []sessionResp `json:"sessions"`
}

func toSessionResp(s model.Session) sessionResp {
	return sessionResp{
		ID:         s.ID,
		MovieID:    s.MovieID,
		Date:       formatDate(s.Date),
		TimeSlot:   s.TimeSlot.Range(),
		RoomNumber: s.RoomNumber,
	}
}

func toMovieResp(m model.Movie, sessions []model.Session) movieResp {
	resp := movieResp{
		ID:             m.ID,
		Name:           m.Name,
		AgeRestriction: m.AgeRestriction,
		Sessions:       make([]sessionResp, 0, len(sessions)),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionResp(s))
	}
	return resp
}

// parseEdits converts the request batch into reconciler edits.  It
// validates field shapes only; conflict and existence checks belong to
// the reconciler.
func parseEdits(reqs []sessionEditReq) ([]booking.SessionEdit, error) {
	edits := make([]booking.SessionEdit, 0, len(reqs))
	for _, r := range reqs {
		var date *time.Time
		if r.Date != nil {
			d, err := parseDate(*r.Date)
			if err != nil {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			}
			date = &d
		}
		var slot *schedule.TimeSlot
		if r.TimeSlot != nil {
			s, err := schedule.Parse(*r.TimeSlot)
			if err != nil {
				return nil, err
			}
			slot = &s
		}
		if r.ID == nil {
			if date == nil || slot == nil || r.RoomNumber == nil {
				return nil, echo.NewHTTPError(http.StatusBadRequest,
					"new sessions require date, time_slot and room_number")
			}
			edits = append(edits, booking.SessionEdit{Create: &booking.SessionCreate{
				Date:       *date,
				TimeSlot:   *slot,
				RoomNumber: *r.RoomNumber,
			}})
			continue
		}
		edits = append(edits, booking.SessionEdit{Update: &booking.SessionUpdate{
			ID:         *r.ID,
			Date:       date,
			TimeSlot:   slot,
			RoomNumber: r.RoomNumber,
			MovieID:    r.MovieID,
		}})
	}
	return edits, nil
}

// Create adds a movie together with an initial session batch, all in
// one transaction.  Any bad or conflicting session aborts the whole
// request, movie row included.
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	edits, err := parseEdits(req.Sessions)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return bookingError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Movies.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	movie := model.Movie{Name: req.Name, AgeRestriction: req.AgeRestriction}
	if err := h.Movies.CreateTx(ctx, tx, &movie); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}

	// A brand-new movie has no current sessions; every edit must be a
	// creation and the reconciler enforces that plus slot uniqueness.
	plan, err := booking.ReconcileSessions(movie.ID, nil, edits)
	if err != nil {
		return bookingError(c, err)
	}
	applied, err := h.Sessions.ApplyPlanTx(ctx, tx, plan)
	if err != nil {
		return bookingError(c, err)
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusCreated, toMovieResp(movie, applied))
}

// List returns a page of movies with their sessions.  skip/take come
// from the query string; take defaults to 50.
func (h *MovieHandler) List(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	take, _ := strconv.Atoi(c.QueryParam("take"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx, skip, take)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		sessions, err := h.Sessions.ListByMovie(ctx, m.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		out = append(out, toMovieResp(m, sessions))
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": out, "count": len(out)})
}

// Get returns one movie with its sessions.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return bookingError(c, err)
	}
	sessions, err := h.Sessions.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toMovieResp(*movie, sessions))
}

// Update edits the movie's own fields and reconciles its session batch
// in one transaction.  The batch is all-or-nothing: one invalid or
// conflicting edit leaves the movie and every session untouched.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req updateMovieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}

	edits, err := parseEdits(req.Sessions)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return bookingError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The snapshot the reconciler plans against is read before the
	// transaction opens; the unique index backstops concurrent writers.
	current, err := h.Sessions.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Movies.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Movies.UpdateFieldsTx(ctx, tx, id, req.Name, req.AgeRestriction); err != nil {
		return bookingError(c, err)
	}

	if len(edits) > 0 {
		plan, err := booking.ReconcileSessions(id, current, edits)
		if err != nil {
			return bookingError(c, err)
		}
		if _, err := h.Sessions.ApplyPlanTx(ctx, tx, plan); err != nil {
			return bookingError(c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return bookingError(c, err)
	}
	sessions, err := h.Sessions.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toMovieResp(*movie, sessions))
}

// Delete removes a movie with its sessions and sold tickets.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkCreate inserts plain movies without sessions and reports how
// many were added.
func (h *MovieHandler) BulkCreate(c echo.Context) error {
	var req bulkCreateMoviesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Movies) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movies is required"})
	}
	movies := make([]model.Movie, 0, len(req.Movies))
	for _, m := range req.Movies {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "every movie needs a name"})
		}
		movies = append(movies, model.Movie{Name: name, AgeRestriction: m.AgeRestriction})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	n, err := h.Movies.BulkCreate(ctx, movies)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"added_count": n})
}

// BulkDelete removes the listed movies, skipping ids that no longer
// exist, and reports how many were deleted.
func (h *MovieHandler) BulkDelete(c echo.Context) error {
	var req bulkDeleteMoviesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	n, err := h.Movies.BulkDelete(ctx, req.IDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bulk delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_count": n})
}

// AddSessions appends a batch of sessions to an existing movie.  The
// reconciler checks the batch against the movie's current sessions, so
// duplicates inside the batch or against the table fail everything.
func (h *MovieHandler) AddSessions(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var reqs []sessionEditReq
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sessions are required"})
	}
	for i := range reqs {
		if reqs[i].ID != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session batch must not carry ids"})
		}
	}
	edits, err := parseEdits(reqs)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return bookingError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return bookingError(c, err)
	}
	current, err := h.Sessions.ListByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	plan, err := booking.ReconcileSessions(movieID, current, edits)
	if err != nil {
		return bookingError(c, err)
	}

	sessions := make([]model.Session, 0, len(plan))
	for _, w := range plan {
		sessions = append(sessions, w.Session)
	}
	n, err := h.Sessions.InsertBatch(ctx, sessions)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"added_count": n})
}

// ListSessions returns a movie's sessions ordered by date.
func (h *MovieHandler) ListSessions(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return bookingError(c, err)
	}
	sessions, err := h.Sessions.ListByMovie(ctx, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]sessionResp, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": out, "count": len(out)})
}
