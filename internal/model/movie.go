package model

import "time"

// Movie represents a film in the catalogue.  A movie owns zero or
// more sessions (1:N); sessions never outlive their movie.  This
// struct corresponds to a row in the `movies` table.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the movie.
//  AgeRestriction – minimum viewer age, 0–18.
//  CreatedAt      – timestamp when the movie was created.
//  UpdatedAt      – timestamp of last update.
type Movie struct {
	ID             uint64    // movies.id
	Name           string    // movies.name
	AgeRestriction uint8     // movies.age_restriction
	CreatedAt      time.Time // movies.created_at
	UpdatedAt      time.Time // movies.updated_at
}
