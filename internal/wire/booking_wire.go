package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// Role scoping happens in the service: admin sees all, owner sees
		// bookings on own rooms, student sees own bookings.
		r.Get("/", bookingHandler.ListBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Get("/{id}/invoice", bookingHandler.GetInvoice)
		r.Put("/{id}/status", bookingHandler.UpdateStatus)
		r.Delete("/{id}", bookingHandler.DeleteBooking)

		r.With(middleware.RequireRole(log, entity.RoleStudent)).Post("/", bookingHandler.CreateBooking)
		r.With(middleware.RequireRole(log, entity.RoleOwner, entity.RoleAdmin)).Post("/bulk-status", bookingHandler.BulkUpdateStatus)
	})
}
