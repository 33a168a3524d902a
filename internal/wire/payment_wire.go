package wire

import (
	"student-housing/internal/adaptor"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, repo *repository.Repository, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/payment-methods", paymentHandler.GetPaymentMethods)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/payments", paymentHandler.GetPayments)

		r.With(middleware.RequireRole(log, entity.RoleStudent)).Post("/api/pay", paymentHandler.Pay)
		r.With(middleware.RequireRole(log, entity.RoleStudent)).Post("/api/pay/quote", paymentHandler.Quote)
	})
}
