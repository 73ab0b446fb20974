package wire

import (
	"movie-portal/internal/adaptor"
	"movie-portal/internal/data/repository"
	"movie-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", reviewHandler.CreateReview)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})

	r.Route("/api/user/reviews", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Get("/", reviewHandler.GetUserReviews)
	})
}
