package usecase

import (
	"time"

	"movie-portal/internal/data/repository"

	"go.uber.org/zap"
)

// Service bundles every use case behind one constructor for wiring.
type Service struct {
	Auth   AuthService
	Genre  GenreService
	Movie  MovieService
	Review ReviewService
	Stats  StatsService
}

func NewService(repo *repository.Repository, sessionExpiry time.Duration, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, sessionExpiry, log),
		Genre:  NewGenreService(repo, log),
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, log),
		Stats:  NewStatsService(repo, log),
	}
}
