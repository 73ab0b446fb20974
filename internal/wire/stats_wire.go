package wire

import (
	"movie-portal/internal/adaptor"
	"movie-portal/internal/data/repository"
	"movie-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/admin/stats", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", statsHandler.GetStats)
	})
}
