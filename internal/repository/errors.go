// Package repository contains the MySQL data access layer.  Business
// rule failures are reported with the sentinel errors of the booking
// package so handlers can treat engine decisions and storage-enforced
// invariants uniformly; only infrastructure failures (connectivity,
// scan errors) pass through untranslated.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrUsernameExists is returned when registering a username that is
// already taken.  Handlers translate this into an HTTP 400 response.
var ErrUsernameExists = errors.New("this user already exists")

// mysqlDuplicateEntry is the server error number MySQL raises when an
// insert or update violates a unique index.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a unique-constraint violation.
// The schema's unique indexes back the engine's invariants (one
// session per room slot, one ticket per session, one username), so
// callers map a duplicate onto the matching business error.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
