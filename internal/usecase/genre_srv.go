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

type GenreService interface {
	ListGenres(ctx context.Context) ([]response.GenreResponse, error)
	CreateGenre(ctx context.Context, principal Principal, req *request.GenreRequest) (*response.GenreResponse, error)
	UpdateGenre(ctx context.Context, principal Principal, id int64, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, principal Principal, id int64) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) ListGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) CreateGenre(ctx context.Context, principal Principal, req *request.GenreRequest) (*response.GenreResponse, error) {
	if !principal.Can(ActionManageCatalog) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Genre.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check genre name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: genre name already exists", repository.ErrDuplicate)
	}

	genre := &entity.Genre{
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.Int64("id", genre.ID), zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, principal Principal, id int64, req *request.GenreRequest) (*response.GenreResponse, error) {
	if !principal.Can(ActionManageCatalog) {
		return nil, ErrForbidden
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find genre: %w", err)
	}
	if genre == nil {
		return nil, repository.ErrNotFound
	}

	duplicate, err := s.repo.Genre.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check genre name: %w", err)
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, fmt.Errorf("%w: genre name already exists", repository.ErrDuplicate)
	}

	genre.Name = req.Name

	if err := s.repo.Genre.Update(ctx, genre); err != nil {
		s.log.Error("Failed to update genre", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("update genre: %w", err)
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, principal Principal, id int64) error {
	if !principal.Can(ActionManageCatalog) {
		return ErrForbidden
	}

	if err := s.repo.Genre.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}

	s.log.Info("Genre deleted", zap.Int64("id", id))
	return nil
}
