package entity

import (
	"time"
)

// SortOrder enumerates the accepted orderings for movie search.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"    // descending id (default)
	SortDateDesc SortOrder = "date_desc" // descending release date
	SortTitle    SortOrder = "title"     // ascending title
)

type Movie struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Director    string    `db:"director"`
	ReleaseDate time.Time `db:"release_date"`
	GenreID     int64     `db:"genre_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// GenreName is populated by queries that join genres; it is not a column
	// of the movies table.
	GenreName string `db:"-"`
}
