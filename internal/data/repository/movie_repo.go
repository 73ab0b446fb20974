package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-portal/internal/data/entity"
	"movie-portal/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieSearch carries the optional filters and the ordering for Search.
// Nil/empty fields mean "match all"; filters combine with AND.
type MovieSearch struct {
	Query   string
	GenreID *int64
	Sort    entity.SortOrder
}

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Search(ctx context.Context, params MovieSearch) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `m.id, m.title, m.director, m.release_date, m.genre_id,
	       m.created_at, m.updated_at, g.name`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so user input matches as a
// plain substring instead of a pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.ReleaseDate,
		&movie.GenreID,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.GenreName,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, director, release_date, genre_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Director,
		movie.ReleaseDate,
		movie.GenreID,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)

	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies m
		JOIN genres g ON g.id = m.genre_id
		WHERE m.id = $1
	`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by id %d: %w", id, err)
	}

	return movie, nil
}

// FindAll returns the whole catalog in insertion order. Aggregates iterate
// this order, so rating ties resolve to the earliest-created movie.
func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies m
		JOIN genres g ON g.id = m.genre_id
		ORDER BY m.id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

// Search filters by a case-insensitive substring on title OR director and by
// exact genre, both optional, ordered per params.Sort.
func (r *movieRepository) Search(ctx context.Context, params MovieSearch) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + movieColumns + `
		FROM movies m
		JOIN genres g ON g.id = m.genre_id
		WHERE 1=1
	`)

	args := []any{}
	argCount := 1

	if params.Query != "" {
		pattern := "%" + escapeLike(params.Query) + "%"
		queryBuilder.WriteString(fmt.Sprintf(" AND (m.title ILIKE $%d ESCAPE '\\' OR m.director ILIKE $%d ESCAPE '\\')", argCount, argCount))
		args = append(args, pattern)
		argCount++
	}

	if params.GenreID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.genre_id = $%d", argCount))
		args = append(args, *params.GenreID)
		argCount++
	}

	switch params.Sort {
	case entity.SortDateDesc:
		queryBuilder.WriteString(" ORDER BY m.release_date DESC")
	case entity.SortTitle:
		queryBuilder.WriteString(" ORDER BY m.title ASC")
	default:
		queryBuilder.WriteString(" ORDER BY m.id DESC")
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", params.Query),
		)
		return nil, fmt.Errorf("search movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, director = $3, release_date = $4, genre_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Director,
		movie.ReleaseDate,
		movie.GenreID,
		movie.UpdatedAt,
	)

	if err != nil {
		if translated := translateConstraint(err); translated != err {
			return translated
		}
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	// Zero rows means the movie vanished between read and write.
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the movie; reviews referencing it go with it via the
// ON DELETE CASCADE foreign key, all in the one statement's transaction.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
