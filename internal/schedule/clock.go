package schedule

import (
	"strconv"
	"strings"
	"time"
)

// StartInstant combines a session's calendar date with the start
// boundary of its slot range, in the given location.  The result is
// the authoritative "has this session started" boundary used by the
// ticket lifecycle: second precision, sub-seconds zeroed.  Only the
// year/month/day of date are read; any time component is discarded.
func StartInstant(date time.Time, slot TimeSlot, loc *time.Location) time.Time {
	hour, min := startOfRange(slot.Range())
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc)
}

// SameDay reports whether the calendar date carried by date matches
// the calendar day of now evaluated in loc.  date is read verbatim
// (no zone conversion): DATE columns carry no zone of their own, so
// converting would shift the day near midnight.
func SameDay(date, now time.Time, loc *time.Location) bool {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.In(loc).Date()
	return dy == ny && dm == nm && dd == nd
}

// startOfRange extracts the leading "HH:MM" of a canonical range.
// Ranges come from the catalog, so the format is trusted; a zero slot
// degrades to midnight.
func startOfRange(r string) (hour, min int) {
	start, _, ok := strings.Cut(r, "-")
	if !ok {
		return 0, 0
	}
	h, _, ok := strings.Cut(start, ":")
	if !ok {
		return 0, 0
	}
	m := start[len(h)+1:]
	hour, _ = strconv.Atoi(h)
	min, _ = strconv.Atoi(m)
	return hour, min
}
