package model

import (
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

// Session represents one screening of a movie on a given date, slot
// and room.  The `(date, time_slot, room_number)` triple is unique
// across the whole theatre: two movies cannot screen in the same room
// at the same time.  Rows live in the `sessions` table.
//
// Fields:
//  ID         – primary key identifier, assigned by the database.
//  MovieID    – owning movie.
//  Date       – calendar date of the screening (DATE column, no time part).
//  TimeSlot   – slot identifier from the fixed catalog.
//  RoomNumber – positive room number.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Session struct {
	ID         uint64            // sessions.id
	MovieID    uint64            // sessions.movie_id
	Date       time.Time         // sessions.date
	TimeSlot   schedule.TimeSlot // sessions.time_slot
	RoomNumber uint32            // sessions.room_number
	CreatedAt  time.Time         // sessions.created_at
	UpdatedAt  time.Time         // sessions.updated_at
}
