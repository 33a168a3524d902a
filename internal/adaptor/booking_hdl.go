package adaptor

import (
	"errors"
	"net/http"

	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (student)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// ListBookings handles GET /api/bookings, scoped to the caller's role
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), actor, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "Bookings retrieved successfully", bookings)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "Booking retrieved successfully", booking)
}

// UpdateStatus handles PUT /api/bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// BulkUpdateStatus handles POST /api/bookings/bulk-status (owner, admin)
func (h *BookingHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.BulkBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.BulkUpdateStatus(r.Context(), actor, &req)
	if errors.Is(err, usecase.ErrBulkRejected) {
		utils.ResponseConflict(w, "No booking was updated", result)
		return
	}
	if err != nil {
		handleServiceError(w, h.log, err, "bulk update booking status")
		return
	}

	utils.ResponseSuccess(w, "Bookings updated successfully", result)
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "Booking deleted successfully", nil)
}

// GetInvoice handles GET /api/bookings/{id}/invoice
func (h *BookingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get invoice")
		return
	}

	utils.ResponseSuccess(w, "Invoice retrieved successfully", invoice)
}
