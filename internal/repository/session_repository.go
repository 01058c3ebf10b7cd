package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// dateLayout is how DATE columns are written back to MySQL.  Reads
// come back as time.Time thanks to parseTime=true on the DSN.
const dateLayout = "2006-01-02"

// SessionRepo manages persistence for screening sessions.  The table
// carries a unique index over (date, time_slot, room_number); a
// violation of it is reported as booking.ErrDuplicateSession so the
// storage constraint and the reconciler speak the same language.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetByID retrieves a session by its ID.  It returns
// booking.ErrSessionNotFound when no matching row exists.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, movie_id, date, time_slot, room_number, created_at, updated_at FROM sessions WHERE id = ?`
	var s model.Session
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.Date, &s.TimeSlot, &s.RoomNumber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByMovie returns all sessions of a movie ordered by date
// ascending.  When no sessions exist it returns an empty slice.
func (r *SessionRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Session, error) {
	const q = `SELECT id, movie_id, date, time_slot, room_number, created_at, updated_at
               FROM sessions WHERE movie_id = ? ORDER BY date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.MovieID, &s.Date, &s.TimeSlot, &s.RoomNumber, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// InsertTx inserts a new session inside tx and assigns the generated
// ID back onto s.  A unique-index violation is reported as
// booking.ErrDuplicateSession.
func (r *SessionRepo) InsertTx(ctx context.Context, tx *sql.Tx, s *model.Session) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (movie_id, date, time_slot, room_number) VALUES (?, ?, ?, ?)`,
		s.MovieID, s.Date.Format(dateLayout), string(s.TimeSlot), s.RoomNumber)
	if err != nil {
		if isDuplicate(err) {
			return booking.ErrDuplicateSession
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateTx rewrites the mutable columns of a session inside tx.  The
// merged values come from the reconciler, so every column is written.
func (r *SessionRepo) UpdateTx(ctx context.Context, tx *sql.Tx, s *model.Session) error {
	const q = `UPDATE sessions
               SET movie_id = ?, date = ?, time_slot = ?, room_number = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := tx.ExecContext(ctx, q,
		s.MovieID, s.Date.Format(dateLayout), string(s.TimeSlot), s.RoomNumber, s.ID)
	if err != nil {
		if isDuplicate(err) {
			return booking.ErrDuplicateSession
		}
		return err
	}
	// The reconciler already proved the row exists; zero rows affected
	// here just means the update was a no-op.
	_, _ = res.RowsAffected()
	return nil
}

// ApplyPlanTx executes a reconciliation write-plan in order inside tx.
// Inserted sessions receive their generated ids.  The first failure
// aborts; the caller rolls the transaction back so the batch stays
// all-or-nothing.
func (r *SessionRepo) ApplyPlanTx(ctx context.Context, tx *sql.Tx, plan []booking.SessionWrite) ([]model.Session, error) {
	applied := make([]model.Session, 0, len(plan))
	for i := range plan {
		s := plan[i].Session
		switch plan[i].Kind {
		case booking.WriteInsert:
			if err := r.InsertTx(ctx, tx, &s); err != nil {
				return nil, err
			}
		case booking.WriteUpdate:
			if err := r.UpdateTx(ctx, tx, &s); err != nil {
				return nil, err
			}
		}
		applied = append(applied, s)
	}
	return applied, nil
}

// InsertBatch adds sessions to an existing movie in one transaction
// and returns how many were added.  Any duplicate aborts the whole
// batch with booking.ErrDuplicateSession.
func (r *SessionRepo) InsertBatch(ctx context.Context, sessions []model.Session) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	for i := range sessions {
		if err := r.InsertTx(ctx, tx, &sessions[i]); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}
