package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// MovieRepo manages persistence for movies.  Session rows are handled
// by SessionRepo; operations that must touch both (create-with-
// sessions, reconciliation, delete) run inside a transaction owned by
// the handler.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *MovieRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts a new movie using the provided transaction and
// populates the generated ID and timestamp fields on m.  The caller
// must commit or roll back the transaction.
func (r *MovieRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Movie) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO movies (name, age_restriction) VALUES (?, ?)`,
		m.Name, m.AgeRestriction)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT id, name, age_restriction, created_at, updated_at FROM movies WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, m.ID).Scan(
		&m.ID, &m.Name, &m.AgeRestriction, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID retrieves a movie by its ID.  It returns
// booking.ErrMovieNotFound when no matching row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, name, age_restriction, created_at, updated_at FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.AgeRestriction, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns movies ordered by id, with skip/take pagination.
// take <= 0 falls back to a page of 50.
func (r *MovieRepo) List(ctx context.Context, skip, take int) ([]model.Movie, error) {
	if take <= 0 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}
	const q = `SELECT id, name, age_restriction, created_at, updated_at FROM movies ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, take, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.AgeRestriction, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UpdateFieldsTx updates the movie's own columns inside tx.  Nil
// pointers leave the column untouched.  It returns
// booking.ErrMovieNotFound when the row does not exist.
func (r *MovieRepo) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, id uint64, name *string, ageRestriction *uint8) error {
	const q = `UPDATE movies
               SET name = COALESCE(?, name),
                   age_restriction = COALESCE(?, age_restriction),
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, name, ageRestriction, id)
	if err != nil {
		return err
	}
	// RowsAffected is zero both for a missing row and for a no-op
	// update, so confirm existence before reporting not-found.
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return booking.ErrMovieNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a movie together with its sessions and their sold
// tickets, all inside one transaction.  Returns
// booking.ErrMovieNotFound when the movie does not exist.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = booking.ErrMovieNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE t FROM tickets t JOIN sessions s ON s.id = t.session_id WHERE s.movie_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE movie_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}

// BulkCreate inserts plain movies (no sessions) and returns how many
// rows were created.
func (r *MovieRepo) BulkCreate(ctx context.Context, movies []model.Movie) (int64, error) {
	if len(movies) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	var count int64
	for i := range movies {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO movies (name, age_restriction) VALUES (?, ?)`,
			movies[i].Name, movies[i].AgeRestriction)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		n, _ := res.RowsAffected()
		count += n
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// BulkDelete removes the movies with the given ids (sessions and
// tickets included) and returns how many movies were deleted.  Ids
// that do not exist are skipped, matching the bulk-delete contract.
func (r *MovieRepo) BulkDelete(ctx context.Context, ids []uint64) (int64, error) {
	var count int64
	for _, id := range ids {
		switch err := r.Delete(ctx, id); {
		case err == nil:
			count++
		case errors.Is(err, booking.ErrMovieNotFound):
			// skipped
		default:
			return count, err
		}
	}
	return count, nil
}
