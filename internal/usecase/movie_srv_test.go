package usecase

import (
	"context"
	"testing"
	"time"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminPrincipal = Principal{Name: "root", Role: entity.RoleAdmin}

func TestCreateMovieValidation(t *testing.T) {
	repo, _ := newFakeRepository()
	svc := NewMovieService(repo, testLogger())
	ctx := context.Background()

	genreID, _, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)

	t.Run("title too short", func(t *testing.T) {
		_, err := svc.CreateMovie(ctx, adminPrincipal, &request.MovieRequest{
			Title:       "X",
			Director:    "Someone",
			ReleaseDate: "2020-01-01",
			GenreID:     genreID,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("release date in the future", func(t *testing.T) {
		tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
		_, err := svc.CreateMovie(ctx, adminPrincipal, &request.MovieRequest{
			Title:       "Time Travel",
			Director:    "Someone",
			ReleaseDate: tomorrow,
			GenreID:     genreID,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("genre must exist", func(t *testing.T) {
		_, err := svc.CreateMovie(ctx, adminPrincipal, &request.MovieRequest{
			Title:       "Orphaned",
			Director:    "Someone",
			ReleaseDate: "2020-01-01",
			GenreID:     genreID + 99,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid movie", func(t *testing.T) {
		created, err := svc.CreateMovie(ctx, adminPrincipal, &request.MovieRequest{
			Title:       "Interstellar",
			Director:    "Christopher Nolan",
			ReleaseDate: "2014-11-07",
			GenreID:     genreID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Interstellar", created.Title)
		assert.Equal(t, "Sci-Fi", created.Genre)
	})
}

func TestCreateMovieRequiresAdmin(t *testing.T) {
	repo, _ := newFakeRepository()
	svc := NewMovieService(repo, testLogger())
	ctx := context.Background()

	genreID, _, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)

	req := &request.MovieRequest{
		Title:       "Tenet",
		Director:    "Christopher Nolan",
		ReleaseDate: "2020-08-26",
		GenreID:     genreID,
	}

	_, err = svc.CreateMovie(ctx, Principal{Name: "alice", Role: entity.RoleUser}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateMovie(ctx, Principal{}, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSearchMovies(t *testing.T) {
	repo, _ := newFakeRepository()
	svc := NewMovieService(repo, testLogger())
	ctx := context.Background()

	sciFi, _, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)
	_, _, err = seedCatalog(repo, "Musical", "Cats", "Tom Hooper", 2019)
	require.NoError(t, err)

	t.Run("substring match on title", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{Query: "cat", Sort: "title"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Cats", found[0].Title)
	})

	t.Run("substring match on director", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{Query: "nolan"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Inception", found[0].Title)
	})

	t.Run("genre filter", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{GenreID: &sciFi})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Inception", found[0].Title)
	})

	t.Run("no filters matches all, newest first", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Cats", found[0].Title)
		assert.Equal(t, "Inception", found[1].Title)
	})

	t.Run("title sort ascending", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{Sort: "title"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Cats", found[0].Title)
	})

	t.Run("release date descending", func(t *testing.T) {
		found, err := svc.SearchMovies(ctx, &request.MovieSearchRequest{Sort: "date_desc"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Cats", found[0].Title)
	})
}

func TestGetMovieDetail(t *testing.T) {
	repo, _ := newFakeRepository()
	movieSvc := NewMovieService(repo, testLogger())
	reviewSvc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	_, movieID, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)

	_, err = reviewSvc.AddReview(ctx, Principal{Name: "alice", Role: entity.RoleUser},
		&request.ReviewRequest{MovieID: movieID, Rating: 8})
	require.NoError(t, err)
	_, err = reviewSvc.AddReview(ctx, Principal{Name: "bob", Role: entity.RoleUser},
		&request.ReviewRequest{MovieID: movieID, Rating: 10})
	require.NoError(t, err)

	detail, err := movieSvc.GetMovie(ctx, movieID, "alice")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, detail.Rating, 0.001)
	assert.Equal(t, 2, detail.ReviewCount)
	require.NotNil(t, detail.ViewerReview)
	assert.Equal(t, "alice", detail.ViewerReview.Author)

	anon, err := movieSvc.GetMovie(ctx, movieID, "")
	require.NoError(t, err)
	assert.Nil(t, anon.ViewerReview)

	_, err = movieSvc.GetMovie(ctx, movieID+99, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateMovie(t *testing.T) {
	repo, _ := newFakeRepository()
	svc := NewMovieService(repo, testLogger())
	ctx := context.Background()

	genreID, movieID, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)

	newTitle := "Inception (Director's Cut)"
	updated, err := svc.UpdateMovie(ctx, adminPrincipal, movieID, &request.MovieUpdateRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, genreID, updated.GenreID)

	// Updating a movie that vanished concurrently reports not found.
	require.NoError(t, svc.DeleteMovie(ctx, adminPrincipal, movieID))
	_, err = svc.UpdateMovie(ctx, adminPrincipal, movieID, &request.MovieUpdateRequest{Title: &newTitle})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteMovieCascadesReviews(t *testing.T) {
	repo, _ := newFakeRepository()
	movieSvc := NewMovieService(repo, testLogger())
	reviewSvc := NewReviewService(repo, testLogger())
	ctx := context.Background()

	_, movieID, err := seedCatalog(repo, "Sci-Fi", "Inception", "Christopher Nolan", 2010)
	require.NoError(t, err)

	_, err = reviewSvc.AddReview(ctx, Principal{Name: "alice", Role: entity.RoleUser},
		&request.ReviewRequest{MovieID: movieID, Rating: 8})
	require.NoError(t, err)
	_, err = reviewSvc.AddReview(ctx, Principal{Name: "bob", Role: entity.RoleUser},
		&request.ReviewRequest{MovieID: movieID, Rating: 10})
	require.NoError(t, err)

	require.NoError(t, movieSvc.DeleteMovie(ctx, adminPrincipal, movieID))

	// The ledger holds nothing for the deleted movie.
	remaining, err := repo.Review.FindByMovieID(ctx, movieID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	err = movieSvc.DeleteMovie(ctx, adminPrincipal, movieID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
