package adaptor

import (
	"encoding/json"
	"net/http"

	"student-housing/internal/data/entity"
	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Room      *RoomHandler
	District  *DistrictHandler
	Booking   *BookingHandler
	Payment   *PaymentHandler
	Dashboard *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Room:      NewRoomHandler(service.Room, log),
		District:  NewDistrictHandler(service.District, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Payment:   NewPaymentHandler(service.Payment, service.Settlement, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
	}
}

// actorFrom reads the caller placed in the context by AuthSession.
func actorFrom(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: userID, Role: entity.UserRole(role)}, true
}

// requireActor writes 401 and returns false when the request is anonymous.
func requireActor(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return actor, ok
}

// decodeJSON writes 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
