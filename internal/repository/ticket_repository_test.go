package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/schedule"
)

func TestTicketCreateTxDuplicateMeansFull(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(2, 7).
		WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry"})
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	repo := NewTicketRepo(db)
	ticket := model.Ticket{UserID: 2, SessionID: 7}
	err = repo.CreateTx(context.Background(), tx, &ticket)
	// A racing purchase that loses on the unique index reports the same
	// failure as losing the in-transaction occupancy check.
	assert.ErrorIs(t, err, booking.ErrSessionIsFull)
}

func TestRedeemAlreadyRedeemed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The guarded UPDATE matches no row once is_redeemed is TRUE.
	mock.ExpectExec("UPDATE tickets").
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTicketRepo(db)
	err = repo.Redeem(context.Background(), 10)
	assert.ErrorIs(t, err, booking.ErrTicketAlreadyRedeemed)
}

func TestSessionInsertTxDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry"})
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	repo := NewSessionRepo(db)
	s := model.Session{
		MovieID:    1,
		Date:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:   schedule.Slot1012,
		RoomNumber: 1,
	}
	err = repo.InsertTx(context.Background(), tx, &s)
	assert.ErrorIs(t, err, booking.ErrDuplicateSession)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&mysql.MySQLError{Number: mysqlDuplicateEntry}))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicate(assert.AnError))
	assert.False(t, isDuplicate(nil))
}
