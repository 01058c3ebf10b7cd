// Package schedule maps the theatre's fixed screening slots to and from
// their human-readable time ranges and derives the absolute start time
// of a session.  It is pure computation: no I/O, no clock reads.
package schedule

import "errors"

// TimeSlot identifies one fixed screening period of the day.  The
// catalog is closed: ten two-hour slots from 02:00 to 22:00 plus the
// late slot ending at midnight.  Values are stored verbatim in the
// sessions table, so renaming a constant is a schema migration.
type TimeSlot string

const (
	Slot0204 TimeSlot = "SLOT_02_04"
	Slot0406 TimeSlot = "SLOT_04_06"
	Slot0608 TimeSlot = "SLOT_06_08"
	Slot0810 TimeSlot = "SLOT_08_10"
	Slot1012 TimeSlot = "SLOT_10_12"
	Slot1214 TimeSlot = "SLOT_12_14"
	Slot1416 TimeSlot = "SLOT_14_16"
	Slot1618 TimeSlot = "SLOT_16_18"
	Slot1820 TimeSlot = "SLOT_18_20"
	Slot2022 TimeSlot = "SLOT_20_22"
	Slot2200 TimeSlot = "SLOT_22_00"
)

// ErrInvalidTimeRange is returned when a textual range does not match
// any canonical slot range exactly.  No fuzzy matching is attempted.
var ErrInvalidTimeRange = errors.New("invalid time range")

// Slots lists the catalog in day order.  Iterating this slice is the
// supported way to enumerate every slot.
var Slots = []TimeSlot{
	Slot0204, Slot0406, Slot0608, Slot0810, Slot1012, Slot1214,
	Slot1416, Slot1618, Slot1820, Slot2022, Slot2200,
}

// slotRanges is the canonical slot -> "HH:MM-HH:MM" bijection.
var slotRanges = map[TimeSlot]string{
	Slot0204: "02:00-04:00",
	Slot0406: "04:00-06:00",
	Slot0608: "06:00-08:00",
	Slot0810: "08:00-10:00",
	Slot1012: "10:00-12:00",
	Slot1214: "12:00-14:00",
	Slot1416: "14:00-16:00",
	Slot1618: "16:00-18:00",
	Slot1820: "18:00-20:00",
	Slot2022: "20:00-22:00",
	Slot2200: "22:00-00:00",
}

// rangeSlots is the reverse index, built once at init.
var rangeSlots = func() map[string]TimeSlot {
	m := make(map[string]TimeSlot, len(slotRanges))
	for s, r := range slotRanges {
		m[r] = s
	}
	return m
}()

// Range returns the canonical "HH:MM-HH:MM" text for a slot.  It is
// total over the catalog; an unknown slot yields the empty string.
func (s TimeSlot) Range() string {
	return slotRanges[s]
}

// Valid reports whether s is one of the catalog slots.
func (s TimeSlot) Valid() bool {
	_, ok := slotRanges[s]
	return ok
}

// Slot converts a textual range back to its slot identifier.  The
// match must be exact; anything else fails with ErrInvalidTimeRange.
func Slot(timeRange string) (TimeSlot, error) {
	s, ok := rangeSlots[timeRange]
	if !ok {
		return "", ErrInvalidTimeRange
	}
	return s, nil
}

// Parse accepts either a slot identifier or a textual range.  Request
// bodies carry ranges ("10:00-12:00") while stored rows carry
// identifiers, and both shapes pass through the same handlers.
func Parse(v string) (TimeSlot, error) {
	if s := TimeSlot(v); s.Valid() {
		return s, nil
	}
	return Slot(v)
}
