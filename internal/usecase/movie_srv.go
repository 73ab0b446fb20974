package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/internal/dto/request"
	"movie-portal/internal/dto/response"
	"movie-portal/pkg/utils"

	"go.uber.org/zap"
)

const releaseDateLayout = "2006-01-02"

type MovieService interface {
	SearchMovies(ctx context.Context, req *request.MovieSearchRequest) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, id int64, viewer string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, principal Principal, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, principal Principal, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, principal Principal, id int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// ratingSummary carries the review tally for one movie.
type ratingSummary struct {
	sum   int
	count int
}

func (r ratingSummary) average() float64 {
	if r.count == 0 {
		return 0
	}
	return float64(r.sum) / float64(r.count)
}

// summarizeRatings tallies all reviews grouped by movie. The ledger is small
// enough that materializing it per request beats pushing aggregation into SQL.
func summarizeRatings(reviews []*entity.Review) map[int64]ratingSummary {
	summaries := make(map[int64]ratingSummary, len(reviews))
	for _, review := range reviews {
		s := summaries[review.MovieID]
		s.sum += review.Rating
		s.count++
		summaries[review.MovieID] = s
	}
	return summaries
}

func (s *movieService) SearchMovies(ctx context.Context, req *request.MovieSearchRequest) ([]response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	search := repository.MovieSearch{
		Query:   req.Query,
		GenreID: req.GenreID,
		Sort:    req.SortOrder(),
	}

	movies, err := s.repo.Movie.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	summaries := summarizeRatings(reviews)

	now := time.Now()
	out := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		summary := summaries[movie.ID]
		out = append(out, response.MovieToResponse(movie, summary.average(), summary.count, now))
	}
	return out, nil
}

func (s *movieService) GetMovie(ctx context.Context, id int64, viewer string) (*response.MovieDetailResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	var sum int
	var viewerReview *entity.Review
	for _, review := range reviews {
		sum += review.Rating
		if viewer != "" && review.Author == viewer {
			viewerReview = review
		}
	}

	var average float64
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
	}

	detail := response.MovieToDetailResponse(movie, average, reviews, viewerReview, time.Now())
	return &detail, nil
}

func (s *movieService) CreateMovie(ctx context.Context, principal Principal, req *request.MovieRequest) (*response.MovieResponse, error) {
	if !principal.Can(ActionManageCatalog) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	releaseDate, err := s.validateReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	genre, err := s.repo.Genre.FindByID(ctx, req.GenreID)
	if err != nil {
		return nil, fmt.Errorf("find genre: %w", err)
	}
	if genre == nil {
		return nil, fmt.Errorf("%w: genre does not exist", ErrValidation)
	}

	now := time.Now()
	movie := &entity.Movie{
		Title:       req.Title,
		Director:    req.Director,
		ReleaseDate: releaseDate,
		GenreID:     req.GenreID,
		GenreName:   genre.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created", zap.Int64("id", movie.ID), zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie, 0, 0, now)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, principal Principal, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if !principal.Can(ActionManageCatalog) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.ReleaseDate != nil {
		releaseDate, err := s.validateReleaseDate(*req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		movie.ReleaseDate = releaseDate
	}
	if req.GenreID != nil {
		genre, err := s.repo.Genre.FindByID(ctx, *req.GenreID)
		if err != nil {
			return nil, fmt.Errorf("find genre: %w", err)
		}
		if genre == nil {
			return nil, fmt.Errorf("%w: genre does not exist", ErrValidation)
		}
		movie.GenreID = *req.GenreID
		movie.GenreName = genre.Name
	}

	movie.UpdatedAt = time.Now()

	// A concurrent delete between the read above and this write surfaces as
	// ErrNotFound from the repository rather than resurrecting the row.
	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		s.log.Error("Failed to update movie", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	summary, err := s.movieRatingSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie, summary.average(), summary.count, time.Now())
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, principal Principal, id int64) error {
	if !principal.Can(ActionManageCatalog) {
		return ErrForbidden
	}

	// Reviews go with the movie via ON DELETE CASCADE.
	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.Int64("id", id))
	return nil
}

func (s *movieService) validateReleaseDate(value string) (time.Time, error) {
	releaseDate, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release date must use YYYY-MM-DD", ErrValidation)
	}
	if releaseDate.After(time.Now()) {
		return time.Time{}, fmt.Errorf("%w: release date must not be in the future", ErrValidation)
	}
	return releaseDate, nil
}

func (s *movieService) movieRatingSummary(ctx context.Context, movieID int64) (ratingSummary, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID)
	if err != nil {
		return ratingSummary{}, fmt.Errorf("load reviews: %w", err)
	}

	var summary ratingSummary
	for _, review := range reviews {
		summary.sum += review.Rating
		summary.count++
	}
	return summary, nil
}
