package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/internal/dto/request"
	"movie-portal/internal/dto/response"
	"movie-portal/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	AddReview(ctx context.Context, principal Principal, req *request.ReviewRequest) (*response.ReviewResponse, error)
	EditReview(ctx context.Context, principal Principal, reviewID int64, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, principal Principal, reviewID int64) error
	GetUserReviews(ctx context.Context, principal Principal) ([]response.ReviewResponse, error)
	ReviewForUser(ctx context.Context, movieID int64, author string) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) AddReview(ctx context.Context, principal Principal, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if !principal.Can(ActionCreateReview) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, repository.ErrNotFound
	}

	existing, err := s.repo.Review.FindByMovieAndAuthor(ctx, req.MovieID, principal.Name)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: you already reviewed this movie", repository.ErrDuplicate)
	}

	now := time.Now()
	review := &entity.Review{
		MovieID:   req.MovieID,
		Author:    principal.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The (movie_id, author) unique index closes the race between the check
	// above and this insert; a loser comes back as ErrDuplicate.
	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("movie_id", req.MovieID),
			zap.String("author", principal.Name),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("id", review.ID),
		zap.Int64("movie_id", review.MovieID),
		zap.String("author", review.Author),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) EditReview(ctx context.Context, principal Principal, reviewID int64, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, repository.ErrNotFound
	}

	// Only the original author may edit; admins get no edit rights. Ownership
	// is decided before the payload is examined, so a non-author always gets
	// forbidden regardless of what they submitted.
	if !principal.CanTouchReview(review.Author, ActionEditReview) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.Int64("id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, principal Principal, reviewID int64) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return repository.ErrNotFound
	}

	if !principal.CanTouchReview(review.Author, ActionDeleteReview) {
		return ErrForbidden
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.Int64("id", reviewID),
		zap.String("requested_by", principal.Name),
	)
	return nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, principal Principal) ([]response.ReviewResponse, error) {
	if principal.Anonymous() {
		return nil, ErrForbidden
	}

	reviews, err := s.repo.Review.FindByAuthor(ctx, principal.Name)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	titles := make(map[int64]string, len(movies))
	for _, movie := range movies {
		titles[movie.ID] = movie.Title
	}

	out := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := response.ReviewToResponse(review)
		resp.MovieTitle = titles[review.MovieID]
		out = append(out, resp)
	}
	return out, nil
}

func (s *reviewService) ReviewForUser(ctx context.Context, movieID int64, author string) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByMovieAndAuthor(ctx, movieID, author)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, nil
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}
