package adaptor

import (
	"net/http"

	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DistrictHandler struct {
	service usecase.DistrictService
	log     *zap.Logger
}

func NewDistrictHandler(service usecase.DistrictService, log *zap.Logger) *DistrictHandler {
	return &DistrictHandler{
		service: service,
		log:     log.With(zap.String("handler", "district")),
	}
}

// ListDistricts handles GET /api/districts (public)
func (h *DistrictHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.service.ListDistricts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list districts")
		return
	}

	utils.ResponseSuccess(w, "Districts retrieved successfully", districts)
}

// CreateDistrict handles POST /api/admin/districts
func (h *DistrictHandler) CreateDistrict(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.DistrictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	district, err := h.service.CreateDistrict(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create district")
		return
	}

	utils.ResponseCreated(w, "District created successfully", district)
}

// UpdateDistrict handles PUT /api/admin/districts/{id}
func (h *DistrictHandler) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.DistrictRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	district, err := h.service.UpdateDistrict(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update district")
		return
	}

	utils.ResponseSuccess(w, "District updated successfully", district)
}

// DeleteDistrict handles DELETE /api/admin/districts/{id}
func (h *DistrictHandler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteDistrict(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete district")
		return
	}

	utils.ResponseSuccess(w, "District deleted successfully", nil)
}
