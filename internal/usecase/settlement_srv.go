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
	"student-housing/internal/gateway"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SettlementService records confirmed gateway results.
type SettlementService interface {
	CheckPayable(booking *entity.Booking) error
	RecordPayment(ctx context.Context, result *gateway.Result, attemptID uuid.UUID) (*entity.Payment, error)
	GetPayments(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
}

type settlementService struct {
	repo          *repository.Repository
	events        EventPublisher
	enforceSingle bool
	log           *zap.Logger
	now           func() time.Time
}

// NewSettlementService builds the ledger. With enforceSingle a booking can
// hold at most one completed payment.
func NewSettlementService(repo *repository.Repository, events EventPublisher, enforceSingle bool, log *zap.Logger) SettlementService {
	return &settlementService{
		repo:          repo,
		events:        events,
		enforceSingle: enforceSingle,
		log:           log.With(zap.String("service", "settlement")),
		now:           time.Now,
	}
}

// CheckPayable rejects a charge the ledger would refuse to record. It runs
// before the operator is contacted so the tenant is never charged for it.
func (s *settlementService) CheckPayable(booking *entity.Booking) error {
	if s.enforceSingle && booking.PaymentStatus == entity.BookingPaymentPaid {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrAlreadySettled)
	}
	return nil
}

// RecordPayment inserts the payment, marks the booking paid and closes the
// attempt, all in one transaction. attemptID may be uuid.Nil.
//
// The booking row is locked first. A pending or confirmed booking ends up
// confirmed; a booking cancelled while the operator was processing keeps its
// status and is only marked paid, since the money has already moved.
func (s *settlementService) RecordPayment(ctx context.Context, result *gateway.Result, attemptID uuid.UUID) (*entity.Payment, error) {
	now := s.now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     result.BookingID,
		Amount:        result.Amount,
		Commission:    result.Commission,
		Method:        result.Method,
		Phone:         result.Phone,
		TransactionID: result.TransactionID,
		Status:        entity.PaymentStatusCompleted,
		PaymentDate:   now,
	}
	if attemptID != uuid.Nil {
		payment.AttemptID = &attemptID
	}

	var bookingStatus entity.BookingStatus
	err := s.repo.Tx.WithinTx(ctx, pgx.TxOptions{}, func(tx *repository.Repository) error {
		locked, err := tx.Booking.FindManyForUpdate(ctx, []uuid.UUID{result.BookingID})
		if err != nil {
			return persistErr("lock booking", err)
		}
		if len(locked) == 0 {
			return fmt.Errorf("booking %s: %w", result.BookingID, ErrNotFound)
		}
		bookingStatus = settledStatus(locked[0].Status)

		if s.enforceSingle {
			n, err := tx.Payment.CountCompletedByBooking(ctx, result.BookingID)
			if err != nil {
				return persistErr("count completed payments", err)
			}
			if n > 0 {
				return fmt.Errorf("booking %s: %w", result.BookingID, ErrAlreadySettled)
			}
		}

		if err := tx.Payment.Create(ctx, payment); err != nil {
			return persistErr("insert payment", err)
		}
		if err := tx.Booking.MarkPaid(ctx, result.BookingID, bookingStatus); err != nil {
			return persistErr("mark booking paid", err)
		}
		if attemptID != uuid.Nil {
			if err := tx.Attempt.MarkSucceeded(ctx, attemptID, payment.ID); err != nil {
				return persistErr("close attempt", err)
			}
		}
		return nil
	})
	if err != nil {
		if !isLedgerError(err) {
			err = persistErr("record payment", err)
		}
		level := s.log.Error
		if errors.Is(err, ErrAlreadySettled) {
			level = s.log.Warn
		}
		level("Failed to record payment",
			zap.Error(err),
			zap.String("booking_id", result.BookingID.String()),
			zap.String("transaction_id", result.TransactionID),
		)
		return nil, err
	}

	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", payment.BookingID.String()),
		zap.Float64("amount", payment.Amount),
		zap.Float64("commission", payment.Commission),
		zap.String("booking_status", string(bookingStatus)),
	)
	if bookingStatus != entity.BookingStatusConfirmed {
		s.log.Warn("Payment settled on a booking that is no longer open",
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("booking_status", string(bookingStatus)),
		)
	}

	publish(ctx, s.events, s.log, EventPaymentCompleted, map[string]any{
		"payment_id":     payment.ID,
		"booking_id":     payment.BookingID,
		"amount":         payment.Amount,
		"commission":     payment.Commission,
		"transaction_id": payment.TransactionID,
		"booking_status": bookingStatus,
	})

	return payment, nil
}

// isLedgerError reports whether err already carries a sentinel the caller
// maps on its own.
func isLedgerError(err error) bool {
	return errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrAlreadySettled) ||
		errors.Is(err, ErrNotFound)
}

func (s *settlementService) GetPayments(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	scope := scopeFor(actor)

	payments, err := s.repo.Payment.List(ctx, scope, req.Limit(), req.Offset())
	if err != nil {
		return nil, persistErr("list payments", err)
	}

	total, err := s.repo.Payment.Count(ctx, scope)
	if err != nil {
		return nil, persistErr("count payments", err)
	}

	items := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, response.PaymentToResponse(p))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}
