package booking

import (
	"fmt"
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

// WriteKind tells the storage layer what to do with a planned session
// write.
type WriteKind int

const (
	WriteUpdate WriteKind = iota // mutate the existing row by Session.ID
	WriteInsert                  // insert a new row, ID assigned by storage
)

// SessionUpdate edits an existing session.  Only non-nil fields are
// applied; everything else keeps its prior value.  MovieID allows
// reassigning the session to another movie in the same pass.
type SessionUpdate struct {
	ID         uint64
	Date       *time.Time
	TimeSlot   *schedule.TimeSlot
	RoomNumber *uint32
	MovieID    *uint64
}

// SessionCreate adds a new session to the movie being edited.
type SessionCreate struct {
	Date       time.Time
	TimeSlot   schedule.TimeSlot
	RoomNumber uint32
}

// SessionEdit is a tagged variant: exactly one of Update or Create is
// set.  The request decoder decides the tag from the presence of an
// id, so the reconciler never has to guess.
type SessionEdit struct {
	Update *SessionUpdate
	Create *SessionCreate
}

// SessionWrite is one entry of the reconciliation plan, ready for the
// storage layer to apply.
type SessionWrite struct {
	Kind    WriteKind
	Session model.Session
}

// ReconcileSessions merges an ordered batch of session edits against a
// movie's current session set and returns the writes to apply, in edit
// order.  The batch is all-or-nothing: any rule violation rejects the
// whole plan and nothing may be written.
//
// An Update naming an id that is not in the current set fails with
// ErrSessionNotFound.  Any edit that would land two sessions on the
// same (date, timeSlot, roomNumber) triple fails with
// ErrDuplicateSession; the triple is the theatre's physical
// anti-collision rule and holds across movies.
func ReconcileSessions(movieID uint64, current []model.Session, edits []SessionEdit) ([]SessionWrite, error) {
	byID := make(map[uint64]model.Session, len(current))
	// occupied maps a room-slot key to the id of the session holding it;
	// planned inserts claim their key under id 0.
	occupied := make(map[string]uint64, len(current))
	for _, s := range current {
		byID[s.ID] = s
		occupied[roomSlotKey(s.Date, s.TimeSlot, s.RoomNumber)] = s.ID
	}

	plan := make([]SessionWrite, 0, len(edits))
	for _, e := range edits {
		switch {
		case e.Update != nil:
			u := e.Update
			s, ok := byID[u.ID]
			if !ok {
				return nil, ErrSessionNotFound
			}
			delete(occupied, roomSlotKey(s.Date, s.TimeSlot, s.RoomNumber))
			if u.Date != nil {
				s.Date = *u.Date
			}
			if u.TimeSlot != nil {
				s.TimeSlot = *u.TimeSlot
			}
			if u.RoomNumber != nil {
				s.RoomNumber = *u.RoomNumber
			}
			if u.MovieID != nil {
				s.MovieID = *u.MovieID
			} else {
				s.MovieID = movieID
			}
			key := roomSlotKey(s.Date, s.TimeSlot, s.RoomNumber)
			if holder, taken := occupied[key]; taken && holder != s.ID {
				return nil, ErrDuplicateSession
			}
			occupied[key] = s.ID
			byID[s.ID] = s
			plan = append(plan, SessionWrite{Kind: WriteUpdate, Session: s})
		case e.Create != nil:
			c := e.Create
			key := roomSlotKey(c.Date, c.TimeSlot, c.RoomNumber)
			if _, taken := occupied[key]; taken {
				return nil, ErrDuplicateSession
			}
			occupied[key] = 0
			plan = append(plan, SessionWrite{Kind: WriteInsert, Session: model.Session{
				MovieID:    movieID,
				Date:       c.Date,
				TimeSlot:   c.TimeSlot,
				RoomNumber: c.RoomNumber,
			}})
		default:
			// Decoders always set one side; an empty edit is a programming
			// error upstream and must not silently vanish from the plan.
			return nil, fmt.Errorf("session edit sets neither update nor create")
		}
	}
	return plan, nil
}

// roomSlotKey builds the uniqueness key for the (date, slot, room)
// invariant.  Only the calendar day of date participates.
func roomSlotKey(date time.Time, slot schedule.TimeSlot, room uint32) string {
	return fmt.Sprintf("%s|%s|%d", date.Format("2006-01-02"), slot, room)
}
