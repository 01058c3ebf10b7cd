package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-ticket-booking/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "booking",
		DBPass: "s3cret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "theater",
	}
	assert.Equal(t,
		"booking:s3cret@tcp(db.internal:3306)/theater?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "root",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "theater",
	}
	assert.Equal(t,
		"root@tcp(localhost:3306)/theater?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}
