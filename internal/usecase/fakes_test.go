package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeStore backs the in-memory repositories used by the service tests. It
// mirrors the schema constraints that matter: the (movie_id, author) unique
// index, the movie->genre foreign key, and review cascade on movie delete.
type fakeStore struct {
	mu       sync.Mutex
	genres   map[int64]*entity.Genre
	movies   map[int64]*entity.Movie
	reviews  map[int64]*entity.Review
	users    map[uuid.UUID]*entity.User
	sessions map[string]*entity.Session
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		genres:   make(map[int64]*entity.Genre),
		movies:   make(map[int64]*entity.Movie),
		reviews:  make(map[int64]*entity.Review),
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[string]*entity.Session),
	}
}

func (s *fakeStore) nextSerial() int64 {
	s.nextID++
	return s.nextID
}

func newFakeRepository() (*repository.Repository, *fakeStore) {
	store := newFakeStore()
	return &repository.Repository{
		User:    &fakeUserRepo{store},
		Session: &fakeSessionRepo{store},
		Genre:   &fakeGenreRepo{store},
		Movie:   &fakeMovieRepo{store},
		Review:  &fakeReviewRepo{store},
	}, store
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type fakeGenreRepo struct{ store *fakeStore }

func (r *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, g := range r.store.genres {
		if strings.EqualFold(g.Name, genre.Name) {
			return repository.ErrDuplicate
		}
	}
	genre.ID = r.store.nextSerial()
	copied := *genre
	r.store.genres[genre.ID] = &copied
	return nil
}

func (r *fakeGenreRepo) FindByID(_ context.Context, id int64) (*entity.Genre, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	genre, ok := r.store.genres[id]
	if !ok {
		return nil, nil
	}
	copied := *genre
	return &copied, nil
}

func (r *fakeGenreRepo) FindByName(_ context.Context, name string) (*entity.Genre, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, genre := range r.store.genres {
		if strings.EqualFold(genre.Name, name) {
			copied := *genre
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeGenreRepo) FindAll(_ context.Context) ([]*entity.Genre, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Genre, 0, len(r.store.genres))
	for _, genre := range r.store.genres {
		copied := *genre
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeGenreRepo) Update(_ context.Context, genre *entity.Genre) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.genres[genre.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *genre
	r.store.genres[genre.ID] = &copied
	return nil
}

func (r *fakeGenreRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.genres[id]; !ok {
		return repository.ErrNotFound
	}
	for _, movie := range r.store.movies {
		if movie.GenreID == id {
			return repository.ErrRestricted
		}
	}
	delete(r.store.genres, id)
	return nil
}

type fakeMovieRepo struct{ store *fakeStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.genres[movie.GenreID]; !ok {
		return repository.ErrRestricted
	}
	movie.ID = r.store.nextSerial()
	copied := *movie
	r.store.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	movie, ok := r.store.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Movie, 0, len(r.store.movies))
	for _, movie := range r.store.movies {
		copied := *movie
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMovieRepo) Search(_ context.Context, params repository.MovieSearch) ([]*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	query := strings.ToLower(params.Query)
	out := make([]*entity.Movie, 0, len(r.store.movies))
	for _, movie := range r.store.movies {
		if query != "" &&
			!strings.Contains(strings.ToLower(movie.Title), query) &&
			!strings.Contains(strings.ToLower(movie.Director), query) {
			continue
		}
		if params.GenreID != nil && movie.GenreID != *params.GenreID {
			continue
		}
		copied := *movie
		out = append(out, &copied)
	}

	switch params.Sort {
	case entity.SortTitle:
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case entity.SortDateDesc:
		sort.Slice(out, func(i, j int) bool { return out[i].ReleaseDate.After(out[j].ReleaseDate) })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out, nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *movie
	r.store.movies[movie.ID] = &copied
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.movies, id)
	for reviewID, review := range r.store.reviews {
		if review.MovieID == id {
			delete(r.store.reviews, reviewID)
		}
	}
	return nil
}

type fakeReviewRepo struct{ store *fakeStore }

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movies[review.MovieID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.store.reviews {
		if existing.MovieID == review.MovieID && existing.Author == review.Author {
			return repository.ErrDuplicate
		}
	}
	review.ID = r.store.nextSerial()
	copied := *review
	r.store.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id int64) (*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	review, ok := r.store.reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) collect(match func(*entity.Review) bool) []*entity.Review {
	out := make([]*entity.Review, 0, len(r.store.reviews))
	for _, review := range r.store.reviews {
		if match(review) {
			copied := *review
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovieID != out[j].MovieID {
			return out[i].MovieID < out[j].MovieID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeReviewRepo) FindByMovieID(_ context.Context, movieID int64) ([]*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(rv *entity.Review) bool { return rv.MovieID == movieID }), nil
}

func (r *fakeReviewRepo) FindByAuthor(_ context.Context, author string) ([]*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(rv *entity.Review) bool { return rv.Author == author }), nil
}

func (r *fakeReviewRepo) FindByMovieAndAuthor(_ context.Context, movieID int64, author string) (*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, review := range r.store.reviews {
		if review.MovieID == movieID && review.Author == author {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindAll(_ context.Context) ([]*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.collect(func(*entity.Review) bool { return true }), nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *review
	r.store.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions[session.Token.String()] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session, ok := r.store.sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	session, ok := r.store.sessions[token]
	if !ok || session.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := session.CreatedAt
	session.RevokedAt = &now
	return nil
}

func dateYMD(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// seedCatalog provisions a genre and a movie, returning both ids.
func seedCatalog(repo *repository.Repository, genreName, title, director string, year int) (int64, int64, error) {
	ctx := context.Background()

	genre, err := (&fakeSeedHelper{repo}).ensureGenre(ctx, genreName)
	if err != nil {
		return 0, 0, err
	}

	movie := &entity.Movie{
		Title:       title,
		Director:    director,
		ReleaseDate: dateYMD(year, 7, 16),
		GenreID:     genre.ID,
		GenreName:   genre.Name,
	}
	if err := repo.Movie.Create(ctx, movie); err != nil {
		return 0, 0, fmt.Errorf("seed movie: %w", err)
	}
	return genre.ID, movie.ID, nil
}

type fakeSeedHelper struct{ repo *repository.Repository }

func (h *fakeSeedHelper) ensureGenre(ctx context.Context, name string) (*entity.Genre, error) {
	existing, err := h.repo.Genre.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	genre := &entity.Genre{Name: name}
	if err := h.repo.Genre.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}
