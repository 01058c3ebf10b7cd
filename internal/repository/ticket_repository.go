package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// TicketRepo manages persistence for tickets.  The table enforces the
// one-ticket-per-session capacity with a unique index on session_id;
// racing purchases lose with booking.ErrSessionIsFull even when both
// passed the engine's snapshot check.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// DB exposes the underlying sql.DB for handler-owned transactions.
func (r *TicketRepo) DB() *sql.DB {
	return r.db
}

// GetBySessionTx returns the ticket sold for a session, or nil when
// the session is still free.  Runs inside tx so the purchase flow's
// check and insert share one transaction.
func (r *TicketRepo) GetBySessionTx(ctx context.Context, tx *sql.Tx, sessionID uint64) (*model.Ticket, error) {
	const q = `SELECT id, user_id, session_id, is_redeemed, created_at, updated_at FROM tickets WHERE session_id = ? LIMIT 1`
	var t model.Ticket
	err := tx.QueryRowContext(ctx, q, sessionID).Scan(
		&t.ID, &t.UserID, &t.SessionID, &t.IsRedeemed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByUserAndSession returns the user's ticket for a session, or nil
// when the pair has no ticket.
func (r *TicketRepo) GetByUserAndSession(ctx context.Context, userID, sessionID uint64) (*model.Ticket, error) {
	const q = `SELECT id, user_id, session_id, is_redeemed, created_at, updated_at
               FROM tickets WHERE user_id = ? AND session_id = ? LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, userID, sessionID).Scan(
		&t.ID, &t.UserID, &t.SessionID, &t.IsRedeemed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTx inserts a new unredeemed ticket inside tx and assigns the
// generated ID back onto t.  A duplicate on session_id means another
// purchase won the race and maps to booking.ErrSessionIsFull.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (user_id, session_id, is_redeemed) VALUES (?, ?, FALSE)`,
		t.UserID, t.SessionID)
	if err != nil {
		if isDuplicate(err) {
			return booking.ErrSessionIsFull
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Redeem flips is_redeemed for the ticket.  The guard in the WHERE
// clause keeps the transition single-shot at the row level; a zero
// update means a concurrent redeem got there first.
func (r *TicketRepo) Redeem(ctx context.Context, ticketID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET is_redeemed = TRUE, updated_at = CURRENT_TIMESTAMP
         WHERE id = ? AND is_redeemed = FALSE`, ticketID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrTicketAlreadyRedeemed
	}
	return nil
}

// WatchHistoryItem is one row of a user's watch history: a redeemed
// ticket enriched with the screening's movie.
type WatchHistoryItem struct {
	TicketID  uint64    `json:"id"`
	WatchDate time.Time `json:"watch_date"`
	MovieID   uint64    `json:"movie_id"`
	MovieName string    `json:"movie_name"`
}

// WatchHistory returns the user's redeemed tickets joined with their
// sessions and movies, most recent session date first.
func (r *TicketRepo) WatchHistory(ctx context.Context, userID uint64) ([]WatchHistoryItem, error) {
	const q = `SELECT t.id, s.date, m.id, m.name
               FROM tickets t
               JOIN sessions s ON s.id = t.session_id
               JOIN movies m ON m.id = s.movie_id
               WHERE t.user_id = ? AND t.is_redeemed = TRUE
               ORDER BY s.date DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WatchHistoryItem
	for rows.Next() {
		var it WatchHistoryItem
		if err := rows.Scan(&it.TicketID, &it.WatchDate, &it.MovieID, &it.MovieName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
