package booking

import (
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

// Engine evaluates ticket lifecycle rules against a single configured
// location.  Every temporal decision (session started, session is
// today) happens in that location so outcomes are deterministic
// regardless of server locale.  The zero location defaults to UTC.
type Engine struct {
	loc *time.Location
}

// New returns an Engine evaluating in loc, or UTC when loc is nil.
func New(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Location exposes the evaluation location for callers that format
// dates for display.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// StartInstant returns the absolute start of a session in the engine's
// location.
func (e *Engine) StartInstant(s model.Session) time.Time {
	return schedule.StartInstant(s.Date, s.TimeSlot, e.loc)
}

// AuthorizePurchase decides whether a ticket may be sold for the
// session.  session is the storage snapshot (nil when the id resolved
// to nothing) and sold reports whether any ticket already exists for
// it.  Checks run in fixed order: existence, then the time window,
// then capacity.
func (e *Engine) AuthorizePurchase(session *model.Session, sold bool, now time.Time) error {
	if session == nil {
		return ErrSessionNotFound
	}
	// A session that has started (or passed) can no longer be bought;
	// the boundary itself counts as started.
	if !e.StartInstant(*session).After(now) {
		return ErrInvalidDateForTicket
	}
	if sold {
		return ErrSessionIsFull
	}
	return nil
}

// AuthorizeRedemption decides whether the ticket may be redeemed now.
// ticket is the (userId, sessionId) lookup result, nil when absent.
// The check order is part of the contract; clients rely on which
// failure wins when several conditions overlap. Missing ticket wins
// over already-redeemed, which wins over session-started, which wins
// over session-not-today.
func (e *Engine) AuthorizeRedemption(ticket *model.Ticket, session model.Session, now time.Time) error {
	if ticket == nil {
		return ErrTicketNotFound
	}
	if ticket.IsRedeemed {
		return ErrTicketAlreadyRedeemed
	}
	if !e.StartInstant(session).After(now) {
		return ErrSessionHasPassed
	}
	// Redemption only opens on the day of the screening.  This is
	// stricter than the has-not-passed check above: a future session on
	// another day is still not redeemable today.
	if !schedule.SameDay(session.Date, now, e.loc) {
		return ErrSessionNotToday
	}
	return nil
}
