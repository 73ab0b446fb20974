package entity

import "time"

// Review is one user's opinion on a movie. Author is the reviewer's display
// name as resolved at request time, stored denormalized; the pair
// (MovieID, Author) is unique.
type Review struct {
	ID        int64     `db:"id"`
	MovieID   int64     `db:"movie_id"`
	Author    string    `db:"author"`
	Rating    int       `db:"rating"` // 1-10
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
