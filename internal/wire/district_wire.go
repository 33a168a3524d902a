package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDistrict(r chi.Router, districtHandler *adaptor.DistrictHandler, repo *repository.Repository, log *zap.Logger) {
	r.Get("/api/districts", districtHandler.ListDistricts)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.RequireRole(log, entity.RoleAdmin),
	).Route("/api/admin/districts", func(r chi.Router) {
		r.Post("/", districtHandler.CreateDistrict)
		r.Put("/{id}", districtHandler.UpdateDistrict)
		r.Delete("/{id}", districtHandler.DeleteDistrict)
	})
}
