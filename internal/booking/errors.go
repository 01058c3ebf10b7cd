// Package booking implements the scheduling and ticket-lifecycle rules
// of the theatre: reconciling session edit batches against a movie's
// current schedule, and deciding whether a ticket may be purchased or
// redeemed.  The package operates on entity snapshots supplied by the
// repository layer and returns decisions; it never touches storage.
package booking

import "errors"

// The error set below is the complete, user-facing failure vocabulary
// of the engine.  Handlers must surface these unchanged; anything else
// coming out of a repository is an infrastructure failure and maps to
// a 500.  Messages mirror the API's documented wording.
var (
	ErrMovieNotFound         = errors.New("movie not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrDuplicateSession      = errors.New("a session with the same date, time slot, and room number already exists")
	ErrSessionIsFull         = errors.New("session is full")
	ErrTicketAlreadyRedeemed = errors.New("ticket already redeemed")
	ErrSessionHasPassed      = errors.New("this session has already passed and cannot be attended")
	ErrSessionNotToday       = errors.New("this session is not scheduled for today")
	ErrInvalidDateForTicket  = errors.New("cannot buy ticket for past or current sessions")
)

// Category classifies an engine error so transport code can pick a
// status without string matching.
type Category int

const (
	CategoryUnknown  Category = iota // not an engine error
	CategoryNotFound                 // missing entity
	CategoryConflict                 // state clash with existing data
	CategoryBadInput                 // request violates a business rule
)

// Categorize returns the stable category of an engine error, or
// CategoryUnknown for errors outside the closed set.
func Categorize(err error) Category {
	switch {
	case errors.Is(err, ErrMovieNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTicketNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrDuplicateSession),
		errors.Is(err, ErrSessionIsFull):
		return CategoryConflict
	case errors.Is(err, ErrTicketAlreadyRedeemed),
		errors.Is(err, ErrSessionHasPassed),
		errors.Is(err, ErrSessionNotToday),
		errors.Is(err, ErrInvalidDateForTicket):
		return CategoryBadInput
	}
	return CategoryUnknown
}
