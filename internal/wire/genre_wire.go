package wire

import (
	"movie-portal/internal/adaptor"
	"movie-portal/internal/data/repository"
	"movie-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler, repo *repository.Repository, log *zap.Logger) {
	r.Get("/api/genres", genreHandler.ListGenres)

	r.Route("/api/admin/genres", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", genreHandler.CreateGenre)
		r.Put("/{id}", genreHandler.UpdateGenre)
		r.Delete("/{id}", genreHandler.DeleteGenre)
	})
}
