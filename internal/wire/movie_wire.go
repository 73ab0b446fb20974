package wire

import (
	"movie-portal/internal/adaptor"
	"movie-portal/internal/data/repository"
	"movie-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, repo *repository.Repository, log *zap.Logger) {
	// Browsing is open to everyone; the detail page resolves the viewer when
	// a token is supplied so it can surface their own review.
	r.Get("/api/movies", movieHandler.SearchMovies)

	r.Route("/api/movies/{id}", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, repo.User, log))
		r.Get("/", movieHandler.GetMovieByID)
	})

	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
