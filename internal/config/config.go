// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field maps to
// one environment variable; required variables are enforced by must()
// and abort startup when missing.
type Config struct {
	Env            string         // application environment (e.g. "dev", "prod")
	Port           string         // HTTP port to listen on
	DBUser         string         // database username
	DBPass         string         // database password (optional)
	DBHost         string         // database host address
	DBPort         string         // database port number
	DBName         string         // database name
	JWTSecret      string         // secret used to sign JWTs
	AccessTTLMin   int            // access token time-to-live in minutes
	RefreshTTLDays int            // refresh token time-to-live in days
	BcryptCost     int            // bcrypt cost for password hashing
	Location       *time.Location // timezone for "session has started" / "is today" decisions
}

// Load reads configuration from the environment and returns a Config.
// BOOKING_TIMEZONE is optional and defaults to UTC; every temporal
// booking rule is evaluated in this one location so redemption windows
// do not drift with the server's locale.
func Load() Config {
	loc := time.UTC
	if tz := os.Getenv("BOOKING_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("invalid BOOKING_TIMEZONE %q: %v", tz, err)
		}
		loc = l
	}
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		Location:       loc,
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
