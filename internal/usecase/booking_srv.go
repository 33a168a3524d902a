package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateStatus(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	BulkUpdateStatus(ctx context.Context, actor Actor, req *request.BulkBookingStatusRequest) (*response.BulkResultResponse, error)
	DeleteBooking(ctx context.Context, actor Actor, bookingID string) error
	GetInvoice(ctx context.Context, actor Actor, bookingID string) (*response.InvoiceResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingService(repo *repository.Repository, events EventPublisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "booking")),
		now:    time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if !actor.IsStudent() {
		return nil, fmt.Errorf("only students can book rooms: %w", ErrForbidden)
	}

	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fieldError("room_id", "Must be a valid UUID")
	}

	start, err := time.Parse(request.DateLayout, req.StartDate)
	if err != nil {
		return nil, fieldError("start_date", "Must be a date in format 2006-01-02")
	}
	end, err := time.Parse(request.DateLayout, req.EndDate)
	if err != nil {
		return nil, fieldError("end_date", "Must be a date in format 2006-01-02")
	}
	if !end.After(start) {
		return nil, fieldError("end_date", "Must be after start_date")
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, persistErr("find room", err)
	}
	if room == nil {
		return nil, fieldError("room_id", "Room does not exist")
	}
	if !room.Available {
		return nil, fieldError("room_id", "Room is not available")
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RoomID:        room.ID,
		StudentID:     actor.UserID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    StayTotal(room.Price, start, end),
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingPaymentPending,
		Notes:         req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", req.RoomID),
			zap.String("student_id", actor.UserID.String()),
		)
		return nil, persistErr("create booking", err)
	}

	months := StayMonths(start, end)
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.Int("months", months),
		zap.Float64("total_price", booking.TotalPrice),
	)

	publish(ctx, s.events, s.log, EventBookingCreated, map[string]any{
		"booking_id":  booking.ID,
		"room_id":     room.ID,
		"owner_id":    room.OwnerID,
		"student_id":  booking.StudentID,
		"total_price": booking.TotalPrice,
	})

	resp := response.BookingToResponse(booking, months)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	booking, _, err := s.loadBooking(ctx, s.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	scope := scopeFor(actor)

	bookings, err := s.repo.Booking.List(ctx, scope, req.Limit(), req.Offset())
	if err != nil {
		return nil, persistErr("list bookings", err)
	}

	total, err := s.repo.Booking.Count(ctx, scope)
	if err != nil {
		return nil, persistErr("count bookings", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResponse(b))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actor Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}
	target := entity.BookingStatus(req.Status)

	var (
		updated *entity.Booking
		from    entity.BookingStatus
	)
	err = s.repo.Tx.WithinTx(ctx, pgx.TxOptions{}, func(tx *repository.Repository) error {
		locked, err := tx.Booking.FindManyForUpdate(ctx, []uuid.UUID{id})
		if err != nil {
			return persistErr("lock booking", err)
		}
		if len(locked) == 0 {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		booking := locked[0]

		room, err := tx.Room.FindByID(ctx, booking.RoomID)
		if err != nil {
			return persistErr("find room", err)
		}
		owner := uuid.Nil
		if room != nil {
			owner = room.OwnerID
		}

		if err := checkTransition(partyOf(actor, booking, owner), booking.Status, target); err != nil {
			return fmt.Errorf("%s -> %s: %w", booking.Status, target, err)
		}

		if err := tx.Booking.UpdateStatus(ctx, id, target); err != nil {
			return persistErr("update booking status", err)
		}

		from = booking.Status
		booking.Status = target
		booking.UpdatedAt = s.now()
		updated = booking
		return nil
	})
	if err != nil {
		s.log.Warn("Booking status update rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("actor_id", actor.UserID.String()),
		)
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)

	publish(ctx, s.events, s.log, EventBookingStatusChanged, map[string]any{
		"booking_id": updated.ID,
		"student_id": updated.StudentID,
		"from":       from,
		"to":         target,
		"actor_id":   actor.UserID,
	})

	resp := toBookingResponse(updated)
	return &resp, nil
}

// BulkUpdateStatus applies one status to many bookings, all or nothing.
// On rejection the per-item results are returned alongside ErrBulkRejected.
func (s *bookingService) BulkUpdateStatus(ctx context.Context, actor Actor, req *request.BulkBookingStatusRequest) (*response.BulkResultResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	seen := make(map[uuid.UUID]bool, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fieldError("ids", "Must be a list of valid UUIDs")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	target := entity.BookingStatus(req.Status)

	result := &response.BulkResultResponse{Items: make([]response.BulkItemResult, 0, len(ids))}
	var changed []entity.Booking
	err := s.repo.Tx.WithinTx(ctx, pgx.TxOptions{}, func(tx *repository.Repository) error {
		changed = changed[:0]
		locked, err := tx.Booking.FindManyForUpdate(ctx, ids)
		if err != nil {
			return persistErr("lock bookings", err)
		}
		byID := make(map[uuid.UUID]*entity.Booking, len(locked))
		for _, b := range locked {
			byID[b.ID] = b
		}

		owners := make(map[uuid.UUID]uuid.UUID)
		rejected := false
		for _, id := range ids {
			item := response.BulkItemResult{ID: id.String(), OK: true}

			booking, ok := byID[id]
			if !ok {
				item.OK, item.Reason = false, ErrNotFound.Error()
				result.Items = append(result.Items, item)
				rejected = true
				continue
			}

			owner, ok := owners[booking.RoomID]
			if !ok {
				room, err := tx.Room.FindByID(ctx, booking.RoomID)
				if err != nil {
					return persistErr("find room", err)
				}
				if room != nil {
					owner = room.OwnerID
				}
				owners[booking.RoomID] = owner
			}

			if err := checkTransition(partyOf(actor, booking, owner), booking.Status, target); err != nil {
				item.OK = false
				item.Reason = fmt.Sprintf("%s -> %s: %s", booking.Status, target, err)
				rejected = true
			} else {
				changed = append(changed, *booking)
			}
			result.Items = append(result.Items, item)
		}

		if rejected {
			return ErrBulkRejected
		}

		n, err := tx.Booking.UpdateStatusMany(ctx, ids, target)
		if err != nil {
			return persistErr("update booking statuses", err)
		}
		result.Applied = int(n)
		return nil
	})
	if errors.Is(err, ErrBulkRejected) {
		s.log.Warn("Bulk booking update rejected",
			zap.Int("count", len(ids)),
			zap.String("status", req.Status),
			zap.String("actor_id", actor.UserID.String()),
		)
		return result, err
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Bulk booking status updated",
		zap.Int("applied", result.Applied),
		zap.String("status", req.Status),
	)

	for _, b := range changed {
		publish(ctx, s.events, s.log, EventBookingStatusChanged, map[string]any{
			"booking_id": b.ID,
			"student_id": b.StudentID,
			"from":       b.Status,
			"to":         target,
			"actor_id":   actor.UserID,
		})
	}

	return result, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor Actor, bookingID string) error {
	booking, p, err := s.loadBooking(ctx, s.repo, actor, bookingID)
	if err != nil {
		return err
	}

	if !canDelete(p, booking) {
		return fmt.Errorf("delete %s booking: %w", booking.Status, ErrForbidden)
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
		}
		return persistErr("delete booking", err)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actor.UserID.String()),
	)

	publish(ctx, s.events, s.log, EventBookingDeleted, map[string]any{
		"booking_id": booking.ID,
		"student_id": booking.StudentID,
		"actor_id":   actor.UserID,
	})

	return nil
}

func (s *bookingService) GetInvoice(ctx context.Context, actor Actor, bookingID string) (*response.InvoiceResponse, error) {
	booking, _, err := s.loadBooking(ctx, s.repo, actor, bookingID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, persistErr("find payment", err)
	}

	invoice := &response.InvoiceResponse{Booking: toBookingResponse(booking)}
	if payment != nil {
		p := response.PaymentToResponse(payment)
		invoice.Payment = &p
	}

	return invoice, nil
}

// loadBooking fetches a booking the actor is a party to.
func (s *bookingService) loadBooking(ctx context.Context, repo *repository.Repository, actor Actor, bookingID string) (*entity.Booking, party, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, partyNone, fieldError("id", "Must be a valid UUID")
	}

	booking, err := repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, partyNone, persistErr("find booking", err)
	}
	if booking == nil {
		return nil, partyNone, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	room, err := repo.Room.FindByID(ctx, booking.RoomID)
	if err != nil {
		return nil, partyNone, persistErr("find room", err)
	}
	owner := uuid.Nil
	if room != nil {
		owner = room.OwnerID
	}

	p := partyOf(actor, booking, owner)
	if p == partyNone {
		return nil, partyNone, fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}

	return booking, p, nil
}

func toBookingResponse(b *entity.Booking) response.BookingResponse {
	return response.BookingToResponse(b, StayMonths(b.StartDate, b.EndDate))
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
