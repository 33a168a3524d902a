package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms", roomHandler.ListRooms) // ?district=&available=&min_price=&max_price=
	r.Get("/api/rooms/{id}", roomHandler.GetRoom)

	// ==================== OWNER / ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.With(middleware.RequireRole(log, entity.RoleOwner)).Post("/api/rooms", roomHandler.CreateRoom)
		r.With(middleware.RequireRole(log, entity.RoleOwner)).Get("/api/owner/rooms", roomHandler.ListMyRooms)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin))

			r.Put("/api/rooms/{id}", roomHandler.UpdateRoom)
			r.Post("/api/rooms/bulk-availability", roomHandler.BulkSetAvailability)
			r.Post("/api/rooms/bulk-delete", roomHandler.BulkDelete)
		})
	})
}
