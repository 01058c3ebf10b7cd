package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartInstant(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	got := StartInstant(date, Slot1012, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), got)

	// The late slot starts at 22:00 on the session's own day.
	got = StartInstant(date, Slot2200, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC), got)
}

func TestStartInstantIgnoresTimeComponent(t *testing.T) {
	// DATE columns scan as midnight, but a stray time component on the
	// input must not leak into the result.
	date := time.Date(2025, 6, 15, 23, 59, 58, 123456789, time.UTC)
	got := StartInstant(date, Slot0204, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 2, 0, 0, 0, time.UTC), got)
}

func TestStartInstantUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := StartInstant(date, Slot1012, loc)

	assert.Equal(t, loc, got.Location())
	// 10:00 Berlin summer time is 08:00 UTC.
	assert.Equal(t, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC), got.UTC())
}

func TestSameDay(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(date, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.UTC))
	assert.True(t, SameDay(date, time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC), time.UTC))
	assert.False(t, SameDay(date, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), time.UTC))
	assert.False(t, SameDay(date, time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC), time.UTC))
}

func TestSameDayConvertsOnlyNow(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// The stored DATE is read verbatim, so a UTC-midnight scan still
	// means June 15 even when the booking timezone is Berlin.
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// 22:30 UTC on June 14 is already June 15 in Berlin.
	now := time.Date(2025, 6, 14, 22, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(date, now, loc))

	// 22:30 UTC on June 15 is June 16 in Berlin.
	now = time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	assert.False(t, SameDay(date, now, loc))
}
