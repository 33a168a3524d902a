package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, repo *repository.Repository, log *zap.Logger) {
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/users/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.RequireRole(log, entity.RoleAdmin),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)            // GET /api/admin/users?page=1&per_page=10
		r.Post("/bulk-delete", userHandler.BulkDelete) // POST /api/admin/users/bulk-delete
		r.Patch("/{id}/status", userHandler.SetStatus) // PATCH /api/admin/users/{id}/status
	})
}
