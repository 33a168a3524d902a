package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", dashboardHandler.Overview)
		r.Get("/stats", dashboardHandler.Stats)
	})
}
