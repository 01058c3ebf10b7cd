package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotPtr(s schedule.TimeSlot) *schedule.TimeSlot { return &s }
func datePtr(t time.Time) *time.Time                 { return &t }
func u32(v uint32) *uint32                           { return &v }
func u64(v uint64) *uint64                           { return &v }

func TestReconcileCreateOnly(t *testing.T) {
	edits := []SessionEdit{
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1214, RoomNumber: 1}},
	}
	plan, err := ReconcileSessions(7, nil, edits)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	for i, w := range plan {
		assert.Equal(t, WriteInsert, w.Kind, "edit %d", i)
		assert.Equal(t, uint64(7), w.Session.MovieID)
	}
	assert.Equal(t, schedule.Slot1012, plan[0].Session.TimeSlot)
	assert.Equal(t, schedule.Slot1214, plan[1].Session.TimeSlot)
}

func TestReconcileUpdateMergesPartialFields(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 2,
	}}
	edits := []SessionEdit{
		{Update: &SessionUpdate{ID: 3, RoomNumber: u32(5)}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	got := plan[0].Session
	assert.Equal(t, WriteUpdate, plan[0].Kind)
	assert.Equal(t, uint64(3), got.ID)
	assert.Equal(t, uint64(7), got.MovieID)
	assert.Equal(t, day(2025, 6, 15), got.Date, "untouched field keeps its value")
	assert.Equal(t, schedule.Slot1012, got.TimeSlot, "untouched field keeps its value")
	assert.Equal(t, uint32(5), got.RoomNumber)
}

func TestReconcileUpdateMissingIDFailsWholeBatch(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 2,
	}}
	edits := []SessionEdit{
		{Create: &SessionCreate{Date: day(2025, 6, 16), TimeSlot: schedule.Slot1012, RoomNumber: 2}},
		{Update: &SessionUpdate{ID: 999, RoomNumber: u32(5)}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, plan, "a rejected batch yields no plan at all")
}

func TestReconcileDuplicateWithinBatch(t *testing.T) {
	edits := []SessionEdit{
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
	}
	_, err := ReconcileSessions(7, nil, edits)
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestReconcileDuplicateAgainstExisting(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1,
	}}
	edits := []SessionEdit{
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
	}
	_, err := ReconcileSessions(7, current, edits)
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestReconcileUpdateFreesOldSlot(t *testing.T) {
	// Moving session 3 out of its slot makes the slot available for a
	// creation later in the same batch.
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1,
	}}
	edits := []SessionEdit{
		{Update: &SessionUpdate{ID: 3, TimeSlot: slotPtr(schedule.Slot1416)}},
		{Create: &SessionCreate{Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, schedule.Slot1416, plan[0].Session.TimeSlot)
	assert.Equal(t, schedule.Slot1012, plan[1].Session.TimeSlot)
}

func TestReconcileUpdateCollidesWithUpdatedSession(t *testing.T) {
	current := []model.Session{
		{ID: 1, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1},
		{ID: 2, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1214, RoomNumber: 1},
	}
	edits := []SessionEdit{
		{Update: &SessionUpdate{ID: 2, TimeSlot: slotPtr(schedule.Slot1012)}},
	}
	_, err := ReconcileSessions(7, current, edits)
	assert.ErrorIs(t, err, ErrDuplicateSession)
}

func TestReconcileUpdateKeepingOwnSlotIsNotADuplicate(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1,
	}}
	// Re-stating the same slot and room on the same session must pass:
	// the session collides only with others, never with itself.
	edits := []SessionEdit{
		{Update: &SessionUpdate{
			ID:         3,
			Date:       datePtr(day(2025, 6, 15)),
			TimeSlot:   slotPtr(schedule.Slot1012),
			RoomNumber: u32(1),
		}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	require.Len(t, plan, 1)
}

func TestReconcileMovieReassignment(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1,
	}}
	edits := []SessionEdit{
		{Update: &SessionUpdate{ID: 3, MovieID: u64(9)}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), plan[0].Session.MovieID)
}

func TestReconcileUpdateWithoutMovieIDPinsToEditedMovie(t *testing.T) {
	current := []model.Session{{
		ID: 3, MovieID: 2, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1,
	}}
	edits := []SessionEdit{
		{Update: &SessionUpdate{ID: 3, RoomNumber: u32(4)}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), plan[0].Session.MovieID)
}

func TestReconcilePreservesEditOrder(t *testing.T) {
	current := []model.Session{
		{ID: 1, MovieID: 7, Date: day(2025, 6, 15), TimeSlot: schedule.Slot1012, RoomNumber: 1},
	}
	edits := []SessionEdit{
		{Create: &SessionCreate{Date: day(2025, 6, 16), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
		{Update: &SessionUpdate{ID: 1, RoomNumber: u32(9)}},
		{Create: &SessionCreate{Date: day(2025, 6, 17), TimeSlot: schedule.Slot1012, RoomNumber: 1}},
	}
	plan, err := ReconcileSessions(7, current, edits)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, WriteInsert, plan[0].Kind)
	assert.Equal(t, WriteUpdate, plan[1].Kind)
	assert.Equal(t, WriteInsert, plan[2].Kind)
}

func TestReconcileEmptyEdits(t *testing.T) {
	plan, err := ReconcileSessions(7, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}
