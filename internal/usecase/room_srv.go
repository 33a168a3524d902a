package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	CreateRoom(ctx context.Context, actor Actor, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error)
	ListRooms(ctx context.Context, actor *Actor, req *request.RoomListRequest) (*response.PaginatedResponse[response.RoomResponse], error)
	UpdateRoom(ctx context.Context, actor Actor, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	BulkSetAvailability(ctx context.Context, actor Actor, req *request.BulkRoomAvailabilityRequest) (*response.BulkCountResponse, error)
	BulkDelete(ctx context.Context, actor Actor, req *request.BulkDeleteRequest) (*response.BulkCountResponse, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
	log      *zap.Logger
}

func NewRoomService(roomRepo repository.RoomRepository, log *zap.Logger) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		log:      log.With(zap.String("service", "room")),
	}
}

func (s *roomService) CreateRoom(ctx context.Context, actor Actor, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if !actor.IsOwner() {
		return nil, fmt.Errorf("only owners list rooms: %w", ErrForbidden)
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:   actor.UserID,
		Title:     strings.TrimSpace(req.Title),
		District:  strings.TrimSpace(req.District),
		Price:     req.Price,
		Available: req.Available == nil || *req.Available,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, unknownDistrict()
		}
		return nil, persistErr("create room", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("owner_id", room.OwnerID.String()),
		zap.Float64("price", room.Price),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	resp := response.RoomToResponse(room)
	return &resp, nil
}

// ListRooms is public. With Mine set, an owner sees only their own rooms.
func (s *roomService) ListRooms(ctx context.Context, actor *Actor, req *request.RoomListRequest) (*response.PaginatedResponse[response.RoomResponse], error) {
	filter := repository.RoomFilter{
		Available: req.Available,
		District:  strings.TrimSpace(req.District),
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
	}
	if req.Mine {
		if actor == nil || !actor.IsOwner() {
			return nil, fmt.Errorf("mine filter: %w", ErrForbidden)
		}
		id := actor.UserID
		filter.OwnerID = &id
	}

	rooms, err := s.roomRepo.List(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, persistErr("list rooms", err)
	}
	total, err := s.roomRepo.Count(ctx, filter)
	if err != nil {
		return nil, persistErr("count rooms", err)
	}

	items := make([]response.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, response.RoomToResponse(r))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *roomService) UpdateRoom(ctx context.Context, actor Actor, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && room.OwnerID != actor.UserID {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrForbidden)
	}

	if req.Title != nil {
		room.Title = strings.TrimSpace(*req.Title)
	}
	if req.District != nil {
		room.District = strings.TrimSpace(*req.District)
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Available != nil {
		room.Available = *req.Available
	}
	room.UpdatedAt = time.Now()

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, unknownDistrict()
		}
		return nil, persistErr("update room", err)
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

// BulkSetAvailability updates every listed room in one statement. Owners
// only affect their own rooms.
func (s *roomService) BulkSetAvailability(ctx context.Context, actor Actor, req *request.BulkRoomAvailabilityRequest) (*response.BulkCountResponse, error) {
	owner, err := roomScope(actor)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	ids, err := toUUIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	n, err := s.roomRepo.SetAvailability(ctx, ids, owner, *req.Available)
	if err != nil {
		return nil, persistErr("set room availability", err)
	}

	s.log.Info("Room availability bulk updated",
		zap.Int("requested", len(ids)),
		zap.Int64("affected", n),
		zap.Bool("available", *req.Available),
	)

	return &response.BulkCountResponse{Requested: len(ids), Affected: n}, nil
}

func (s *roomService) BulkDelete(ctx context.Context, actor Actor, req *request.BulkDeleteRequest) (*response.BulkCountResponse, error) {
	owner, err := roomScope(actor)
	if err != nil {
		return nil, err
	}
	ids, err := parseIDs(req)
	if err != nil {
		return nil, err
	}

	n, err := s.roomRepo.DeleteMany(ctx, ids, owner)
	if err != nil {
		return nil, persistErr("delete rooms", err)
	}

	s.log.Info("Rooms bulk deleted", zap.Int("requested", len(ids)), zap.Int64("deleted", n))
	return &response.BulkCountResponse{Requested: len(ids), Affected: n}, nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}

	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, persistErr("find room", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}
	return room, nil
}

// roomScope returns the owner filter for bulk room operations: nil for
// admins, the caller for owners.
func roomScope(actor Actor) (*uuid.UUID, error) {
	switch {
	case actor.IsAdmin():
		return nil, nil
	case actor.IsOwner():
		id := actor.UserID
		return &id, nil
	}
	return nil, ErrForbidden
}

func unknownDistrict() error {
	return fieldError("district", "Unknown district, pick one from /api/districts")
}
