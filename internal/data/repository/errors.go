// Package repository persists the movie catalog, the review ledger and the
// identity records over PostgreSQL. Sentinel errors defined here let services
// and handlers distinguish failure modes without string matching.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when the referenced row does not exist, including
// updates and deletes that race with a concurrent delete.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint, such
// as a second review for the same (movie, author) pair or a taken genre name.
var ErrDuplicate = errors.New("already exists")

// ErrRestricted is returned when a delete is blocked by dependent rows, such
// as removing a genre that still has movies.
var ErrRestricted = errors.New("restricted by dependent records")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateConstraint maps PostgreSQL constraint violations onto the sentinel
// errors above. The unique index on reviews(movie_id, author) makes the
// duplicate-review check atomic with the insert, so two concurrent writers
// cannot both succeed.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrRestricted
		}
	}
	return err
}
