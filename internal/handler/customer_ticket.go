package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	queuepublisher "github.com/iliyamo/movie-ticket-booking/internal/service"
)

// TicketHandler serves the customer-facing ticket lifecycle: buying a
// ticket for a future session and redeeming it at the door.
type TicketHandler struct {
	Engine   *booking.Engine
	Tickets  *repository.TicketRepo
	Sessions *repository.SessionRepo
	Movies   *repository.MovieRepo
	Users    *repository.UserRepo
}

func NewTicketHandler(e *booking.Engine, t *repository.TicketRepo, s *repository.SessionRepo,
	m *repository.MovieRepo, u *repository.UserRepo) *TicketHandler {
	return &TicketHandler{Engine: e, Tickets: t, Sessions: s, Movies: m, Users: u}
}

type buyTicketReq struct {
	SessionID uint64 `json:"session_id"`
}

type ticketResp struct {
	ID        uint64 `json:"id"`
	SessionID uint64 `json:"session_id"`
	MovieName string `json:"movie_name"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

// Buy sells the customer a ticket for a future session.  The occupancy
// check and the insert share one transaction; the unique index on
// session_id settles any race the snapshot misses.
func (h *TicketHandler) Buy(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req buyTicketReq
	if err := c.Bind(&req); err != nil || req.SessionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	session, err := h.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return bookingError(c, err)
	}
	movie, err := h.Movies.GetByID(ctx, session.MovieID)
	if err != nil {
		return bookingError(c, err)
	}

	tx, err := h.Tickets.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := h.Tickets.GetBySessionTx(ctx, tx, session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Engine.AuthorizePurchase(session, existing != nil, time.Now()); err != nil {
		return bookingError(c, err)
	}

	ticket := model.Ticket{UserID: userID, SessionID: session.ID}
	if err := h.Tickets.CreateTx(ctx, tx, &ticket); err != nil {
		return bookingError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	go publishTicketEvent(queue.TicketPurchasedQueue, ticket, *session, movie.Name)

	return c.JSON(http.StatusCreated, ticketResp{
		ID:        ticket.ID,
		SessionID: session.ID,
		MovieName: movie.Name,
		Date:      formatDate(session.Date),
		TimeSlot:  session.TimeSlot.Range(),
	})
}

// Attend redeems the caller's ticket for the session, marking the
// visit.  Redemption only works on the session's calendar day, before
// the screening starts.
func (h *TicketHandler) Attend(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// The ticket is looked up first: a session id the caller holds no
	// ticket for reports "ticket not found", whether or not the session
	// itself exists.
	ticket, err := h.Tickets.GetByUserAndSession(ctx, userID, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ticket == nil {
		return bookingError(c, booking.ErrTicketNotFound)
	}
	session, err := h.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return bookingError(c, err)
	}
	if err := h.Engine.AuthorizeRedemption(ticket, *session, time.Now()); err != nil {
		return bookingError(c, err)
	}
	if err := h.Tickets.Redeem(ctx, ticket.ID); err != nil {
		return bookingError(c, err)
	}

	movieName := ""
	if movie, err := h.Movies.GetByID(ctx, session.MovieID); err == nil {
		movieName = movie.Name
	}
	go publishTicketEvent(queue.TicketRedeemedQueue, *ticket, *session, movieName)

	return c.JSON(http.StatusOK, ticketResp{
		ID:        ticket.ID,
		SessionID: session.ID,
		MovieName: movieName,
		Date:      formatDate(session.Date),
		TimeSlot:  session.TimeSlot.Range(),
	})
}

// WatchHistory returns the redeemed tickets of a user, most recent
// first.  Customers may only read their own history; managers may read
// anyone's.
func (h *TicketHandler) WatchHistory(c echo.Context) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.authorizeUserAccess(c, targetID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, targetID); err != nil {
		return bookingError(c, err)
	}
	items, err := h.Tickets.WatchHistory(ctx, targetID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if items == nil {
		items = []repository.WatchHistoryItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"watch_history": items, "count": len(items)})
}

// GetUser returns a user's profile, with the same ownership rule as
// watch history.
func (h *TicketHandler) GetUser(c echo.Context) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.authorizeUserAccess(c, targetID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, targetID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Username: u.Username, Age: u.Age, Role: u.Role})
}

// authorizeUserAccess decides whether the caller may read targetID's
// data: managers read anyone, customers only themselves.  Denial is
// returned as an *echo.HTTPError and nothing is written here, so a
// denied request never reaches the data layer.
func (h *TicketHandler) authorizeUserAccess(c echo.Context, targetID uint64) error {
	callerID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if getRole(c) != model.RoleManager && callerID != targetID {
		return echo.NewHTTPError(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return nil
}

// publishTicketEvent fires a lifecycle event at the broker.  It runs
// detached from the request; a broker outage must never fail a
// purchase or redemption that already committed.
func publishTicketEvent(queueName string, t model.Ticket, s model.Session, movieName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queuepublisher.PublishTicketEvent(ctx, queueName, queue.TicketEvent{
		EventID:    uuid.NewString(),
		TicketID:   t.ID,
		UserID:     t.UserID,
		SessionID:  s.ID,
		MovieName:  movieName,
		Date:       formatDate(s.Date),
		TimeSlot:   s.TimeSlot.Range(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
