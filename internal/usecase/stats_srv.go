package usecase

import (
	"context"
	"fmt"
	"math"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/internal/dto/response"

	"go.uber.org/zap"
)

type StatsService interface {
	GetStats(ctx context.Context, principal Principal) (*response.StatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) GetStats(ctx context.Context, principal Principal) (*response.StatsResponse, error) {
	if !principal.Can(ActionViewStats) {
		return nil, ErrForbidden
	}

	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	return &response.StatsResponse{
		TotalMovies:  len(movies),
		TotalReviews: len(reviews),
		BestMovie:    bestMovie(movies, reviews),
	}, nil
}

// bestMovie picks the movie with the highest mean rating among movies that
// have at least one review. Ties go to the movie encountered first in the
// input order. Returns nil when no movie has been reviewed.
func bestMovie(movies []*entity.Movie, reviews []*entity.Review) *response.BestMovieResponse {
	summaries := summarizeRatings(reviews)

	var best *response.BestMovieResponse
	for _, movie := range movies {
		summary := summaries[movie.ID]
		if summary.count == 0 {
			continue
		}

		average := summary.average()
		if best == nil || average > best.AverageRating {
			best = &response.BestMovieResponse{
				ID:            movie.ID,
				Title:         movie.Title,
				AverageRating: average,
				RoundedRating: roundHalfUp(average),
				ReviewCount:   summary.count,
			}
		}
	}
	return best
}

// roundHalfUp rounds to the nearest integer with .5 going up, for the
// star display.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
