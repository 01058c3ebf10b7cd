package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

func session(id uint64, date time.Time, slot schedule.TimeSlot) model.Session {
	return model.Session{ID: id, MovieID: 1, Date: date, TimeSlot: slot, RoomNumber: 1}
}

func TestAuthorizePurchase(t *testing.T) {
	e := New(time.UTC)
	s := session(1, day(2025, 6, 15), schedule.Slot1012)

	t.Run("missing session", func(t *testing.T) {
		err := e.AuthorizePurchase(nil, false, day(2025, 6, 14))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("future session sells", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 9, 59, 59, 0, time.UTC)
		assert.NoError(t, e.AuthorizePurchase(&s, false, now))
	})

	t.Run("the night before sells", func(t *testing.T) {
		now := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)
		assert.NoError(t, e.AuthorizePurchase(&s, false, now))
	})

	t.Run("start boundary counts as started", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		err := e.AuthorizePurchase(&s, false, now)
		assert.ErrorIs(t, err, ErrInvalidDateForTicket)
	})

	t.Run("one second past start", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 10, 0, 1, 0, time.UTC)
		err := e.AuthorizePurchase(&s, false, now)
		assert.ErrorIs(t, err, ErrInvalidDateForTicket)
	})

	t.Run("sold out", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
		err := e.AuthorizePurchase(&s, true, now)
		assert.ErrorIs(t, err, ErrSessionIsFull)
	})

	t.Run("time window outranks capacity", func(t *testing.T) {
		// A started session reports the date failure even when it is
		// also sold out.
		now := time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC)
		err := e.AuthorizePurchase(&s, true, now)
		assert.ErrorIs(t, err, ErrInvalidDateForTicket)
	})
}

func TestAuthorizeRedemption(t *testing.T) {
	e := New(time.UTC)
	s := session(1, day(2025, 6, 15), schedule.Slot1012)
	fresh := &model.Ticket{ID: 10, UserID: 2, SessionID: 1}
	used := &model.Ticket{ID: 10, UserID: 2, SessionID: 1, IsRedeemed: true}

	t.Run("happy path on the session day", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
		assert.NoError(t, e.AuthorizeRedemption(fresh, s, now))
	})

	t.Run("missing ticket", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
		err := e.AuthorizeRedemption(nil, s, now)
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("already redeemed wins over passed", func(t *testing.T) {
		// The session has also started; already-redeemed must still be
		// the reported failure.
		now := time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC)
		err := e.AuthorizeRedemption(used, s, now)
		assert.ErrorIs(t, err, ErrTicketAlreadyRedeemed)
	})

	t.Run("session started", func(t *testing.T) {
		now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		err := e.AuthorizeRedemption(fresh, s, now)
		assert.ErrorIs(t, err, ErrSessionHasPassed)
	})

	t.Run("session on a past day", func(t *testing.T) {
		now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
		err := e.AuthorizeRedemption(fresh, s, now)
		assert.ErrorIs(t, err, ErrSessionHasPassed)
	})

	t.Run("future session on another day", func(t *testing.T) {
		// Not started, so the not-today rule is what rejects it.
		now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
		err := e.AuthorizeRedemption(fresh, s, now)
		assert.ErrorIs(t, err, ErrSessionNotToday)
	})
}

func TestEngineLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	e := New(berlin)
	assert.Equal(t, berlin, e.Location())

	// nil defaults to UTC.
	assert.Equal(t, time.UTC, New(nil).Location())
}

func TestRedemptionInConfiguredTimezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	e := New(berlin)

	s := session(1, day(2025, 6, 15), schedule.Slot1012)
	fresh := &model.Ticket{ID: 10, UserID: 2, SessionID: 1}

	// 07:30 UTC is 09:30 in Berlin: the session day, before the 10:00
	// local start.
	now := time.Date(2025, 6, 15, 7, 30, 0, 0, time.UTC)
	assert.NoError(t, e.AuthorizeRedemption(fresh, s, now))

	// 08:30 UTC is 10:30 in Berlin: the session already started there,
	// even though UTC still reads 08:30.
	now = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	assert.ErrorIs(t, e.AuthorizeRedemption(fresh, s, now), ErrSessionHasPassed)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryNotFound, Categorize(ErrSessionNotFound))
	assert.Equal(t, CategoryNotFound, Categorize(ErrTicketNotFound))
	assert.Equal(t, CategoryNotFound, Categorize(ErrMovieNotFound))
	assert.Equal(t, CategoryNotFound, Categorize(ErrUserNotFound))
	assert.Equal(t, CategoryConflict, Categorize(ErrDuplicateSession))
	assert.Equal(t, CategoryConflict, Categorize(ErrSessionIsFull))
	assert.Equal(t, CategoryBadInput, Categorize(ErrTicketAlreadyRedeemed))
	assert.Equal(t, CategoryBadInput, Categorize(ErrInvalidDateForTicket))
	assert.Equal(t, CategoryBadInput, Categorize(ErrSessionHasPassed))
	assert.Equal(t, CategoryBadInput, Categorize(ErrSessionNotToday))
	assert.Equal(t, CategoryUnknown, Categorize(assert.AnError))
}
