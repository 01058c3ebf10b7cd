package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRangeRoundTrip(t *testing.T) {
	for _, slot := range Slots {
		r := slot.Range()
		require.NotEmpty(t, r, "slot %s has no range", slot)

		back, err := Slot(r)
		require.NoError(t, err)
		assert.Equal(t, slot, back)
	}
}

func TestSlotCatalog(t *testing.T) {
	assert.Len(t, Slots, 11)
	assert.Equal(t, "02:00-04:00", Slot0204.Range())
	assert.Equal(t, "10:00-12:00", Slot1012.Range())
	// The late slot crosses midnight in text only; its start is 22:00.
	assert.Equal(t, "22:00-00:00", Slot2200.Range())
}

func TestSlotRejectsUnknownRanges(t *testing.T) {
	cases := []string{
		"",
		"10:00-12:00 ", // trailing space, no fuzzy matching
		"10:00–12:00",  // wrong dash
		"10:00 - 12:00",
		"00:00-02:00", // not in the catalog
		"22:00-24:00",
		"10-12",
		"SLOT_10_12", // identifiers are not ranges
	}
	for _, c := range cases {
		_, err := Slot(c)
		assert.ErrorIs(t, err, ErrInvalidTimeRange, "input %q", c)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Slot1416.Valid())
	assert.False(t, TimeSlot("SLOT_00_02").Valid())
	assert.False(t, TimeSlot("").Valid())
}

func TestParseAcceptsBothShapes(t *testing.T) {
	s, err := Parse("SLOT_18_20")
	require.NoError(t, err)
	assert.Equal(t, Slot1820, s)

	s, err = Parse("18:00-20:00")
	require.NoError(t, err)
	assert.Equal(t, Slot1820, s)

	_, err = Parse("18:00-21:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
