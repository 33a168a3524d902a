package adaptor

import (
	"net/http"
	"strconv"

	"student-housing/internal/dto/request"
	"student-housing/internal/usecase"
	"student-housing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms (public)
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	h.listRooms(w, r, false)
}

// ListMyRooms handles GET /api/owner/rooms (owner)
func (h *RoomHandler) ListMyRooms(w http.ResponseWriter, r *http.Request) {
	h.listRooms(w, r, true)
}

func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request, mine bool) {
	query := r.URL.Query()

	req := &request.RoomListRequest{
		PaginatedRequest: *parsePagination(r),
		District:         query.Get("district"),
		Available:        parseBool(query.Get("available")),
		MinPrice:         parseFloat(query.Get("min_price")),
		MaxPrice:         parseFloat(query.Get("max_price")),
		Mine:             mine,
	}

	var actor *usecase.Actor
	if a, ok := actorFrom(r); ok {
		actor = &a
	}

	rooms, err := h.service.ListRooms(r.Context(), actor, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "Rooms retrieved successfully", rooms)
}

// GetRoom handles GET /api/rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "Room retrieved successfully", room)
}

// CreateRoom handles POST /api/rooms (owner)
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.CreateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created successfully", room)
}

// UpdateRoom handles PUT /api/rooms/{id} (owner of the room or admin)
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.UpdateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated successfully", room)
}

// BulkSetAvailability handles POST /api/rooms/bulk-availability (owner, admin)
func (h *RoomHandler) BulkSetAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req request.BulkRoomAvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.BulkSetAvailability(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk set room availability")
		return
	}

	utils.ResponseSuccess(w, "Room availability updated", result)
}

// BulkDelete handles POST /api/rooms/bulk-delete (owner, admin)
func (h *RoomHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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
		handleServiceError(w, h.log, err, "bulk delete rooms")
		return
	}

	utils.ResponseSuccess(w, "Rooms deleted successfully", result)
}

// parseBool returns nil for anything but "true" or "false".
func parseBool(value string) *bool {
	b, err := strconv.ParseBool(value)
	if value == "" || err != nil {
		return nil
	}
	return &b
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
