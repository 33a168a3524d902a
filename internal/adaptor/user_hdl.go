package adaptor

import (
	"net/http"

	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), actor)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// GetAllUsers handles GET /api/admin/users (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	users, err := h.service.GetAllUsers(r.Context(), actor, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get all users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// SetStatus handles PATCH /api/admin/users/{id}/status (admin only)
func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.UserStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set user status")
		return
	}

	utils.ResponseSuccess(w, "User status updated successfully", user)
}

// BulkDelete handles POST /api/admin/users/bulk-delete (admin only)
func (h *UserHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.BulkDelete(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk delete users")
		return
	}

	utils.ResponseSuccess(w, "Users deleted successfully", result)
}
