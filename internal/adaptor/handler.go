package adaptor

import (
	"errors"
	"net/http"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/internal/usecase"
	"movie-portal/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Genre  *GenreHandler
	Movie  *MovieHandler
	Review *ReviewHandler
	Stats  *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Genre:  NewGenreHandler(service.Genre, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Review: NewReviewHandler(service.Review, log),
		Stats:  NewStatsHandler(service.Stats, log),
	}
}

// principalFromRequest rebuilds the caller identity the middleware stashed in
// the context. Anonymous requests yield the zero Principal.
func principalFromRequest(r *http.Request) usecase.Principal {
	username, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		return usecase.Principal{}
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Principal{Name: username, Role: entity.UserRole(role)}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a server fault and gets logged.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, "You are not allowed to perform this action")
	case errors.Is(err, repository.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, repository.ErrDuplicate):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, repository.ErrRestricted):
		utils.ResponseConflict(w, "Resource is still referenced and cannot be removed")
	default:
		log.Error("Unhandled service error", zap.String("op", op), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
