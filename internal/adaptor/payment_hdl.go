package adaptor

import (
	"net/http"

	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"go.uber.org/zap"
)

// IdempotencyKeyHeader overrides idempotency_key in the request body.
const IdempotencyKeyHeader = "Idempotency-Key"

type PaymentHandler struct {
	service    usecase.PaymentService
	settlement usecase.SettlementService
	log        *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, settlement usecase.SettlementService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:    service,
		settlement: settlement,
		log:        log.With(zap.String("handler", "payment")),
	}
}

// Pay handles POST /api/pay (student). Blocks for the operator round trip.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.PayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if key := r.Header.Get(IdempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	payment, err := h.service.Pay(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "Payment successful", payment)
}

// Quote handles POST /api/pay/quote (student)
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote payment")
		return
	}

	utils.ResponseSuccess(w, "Quote computed", quote)
}

// GetPayments handles GET /api/payments, scoped to the caller's role
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	payments, err := h.settlement.GetPayments(r.Context(), actor, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved successfully", payments)
}

// GetPaymentMethods handles GET /api/payment-methods (public)
func (h *PaymentHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Payment methods retrieved successfully", h.service.GetPaymentMethods(r.Context()))
}
