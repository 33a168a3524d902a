package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"student-housing/internal/commission"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"
	"student-housing/internal/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway initiates and confirms mobile-money charges.
type PaymentGateway interface {
	Initiate(bookingID uuid.UUID, method, phone string, total float64) (*gateway.Charge, error)
	Process(ctx context.Context, charge *gateway.Charge) (*gateway.Result, error)
}

type PaymentService interface {
	Pay(ctx context.Context, actor Actor, req *request.PayRequest) (*response.PaymentResponse, error)
	Quote(ctx context.Context, actor Actor, req *request.QuoteRequest) (*response.QuoteResponse, error)
	GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse
}

type paymentService struct {
	repo       *repository.Repository
	gateway    PaymentGateway
	settlement SettlementService
	events     EventPublisher
	log        *zap.Logger
	now        func() time.Time
}

func NewPaymentService(
	repo *repository.Repository,
	gw PaymentGateway,
	settlement SettlementService,
	events EventPublisher,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:       repo,
		gateway:    gw,
		settlement: settlement,
		events:     events,
		log:        log.With(zap.String("service", "payment")),
		now:        time.Now,
	}
}

// Pay charges the tenant for a booking through the gateway and settles the
// result. Replaying an idempotency key returns the outcome of its attempt.
func (s *paymentService) Pay(ctx context.Context, actor Actor, req *request.PayRequest) (*response.PaymentResponse, error) {
	booking, err := s.payableBooking(ctx, actor, req.BookingID, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Attempt.FindByKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, persistErr("find payment attempt", err)
	}
	if existing != nil {
		return s.replay(ctx, existing, booking.ID)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, fieldError("booking_id", "Booking is cancelled")
	}
	if err := s.settlement.CheckPayable(booking); err != nil {
		s.log.Warn("Payment refused before charge", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, err
	}

	charge, err := s.gateway.Initiate(booking.ID, req.Method, req.Phone, booking.TotalPrice)
	if err != nil {
		s.log.Warn("Payment request rejected", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("initiate payment: %w", err)
	}

	now := s.now()
	attempt := &entity.PaymentAttempt{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:      booking.ID,
		IdempotencyKey: req.IdempotencyKey,
		Method:         charge.Method,
		Phone:          charge.Phone,
		Amount:         charge.Amount,
		Status:         entity.AttemptStatusProcessing,
	}
	if err := s.repo.Attempt.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("key %s: %w", req.IdempotencyKey, ErrAttemptInProgress)
		}
		return nil, persistErr("create payment attempt", err)
	}

	result, err := s.gateway.Process(ctx, charge)
	if err != nil {
		return nil, s.closeAttempt(ctx, attempt, err)
	}

	// The operator has taken the money; settle even if the client left.
	payment, err := s.settlement.RecordPayment(context.WithoutCancel(ctx), result, attempt.ID)
	if err != nil {
		if cerr := s.repo.Attempt.Close(context.WithoutCancel(ctx), attempt.ID, entity.AttemptStatusFailed, err.Error()); cerr != nil {
			s.log.Error("Failed to close payment attempt", zap.Error(cerr), zap.String("attempt_id", attempt.ID.String()))
		}
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// closeAttempt records why the gateway did not confirm and maps the cause.
func (s *paymentService) closeAttempt(ctx context.Context, attempt *entity.PaymentAttempt, cause error) error {
	status := entity.AttemptStatusFailed
	if ctx.Err() != nil || errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		status = entity.AttemptStatusAbandoned
	}

	if err := s.repo.Attempt.Close(context.WithoutCancel(ctx), attempt.ID, status, cause.Error()); err != nil {
		s.log.Error("Failed to close payment attempt", zap.Error(err), zap.String("attempt_id", attempt.ID.String()))
	}

	s.log.Info("Payment attempt closed",
		zap.String("attempt_id", attempt.ID.String()),
		zap.String("booking_id", attempt.BookingID.String()),
		zap.String("status", string(status)),
		zap.NamedError("cause", cause),
	)

	publish(ctx, s.events, s.log, EventPaymentFailed, map[string]any{
		"attempt_id": attempt.ID,
		"booking_id": attempt.BookingID,
		"status":     status,
		"reason":     cause.Error(),
	})

	if status == entity.AttemptStatusAbandoned {
		return fmt.Errorf("payment abandoned: %w", cause)
	}
	return fmt.Errorf("process payment: %w", cause)
}

func (s *paymentService) replay(ctx context.Context, attempt *entity.PaymentAttempt, bookingID uuid.UUID) (*response.PaymentResponse, error) {
	if attempt.BookingID != bookingID {
		return nil, fieldError("idempotency_key", "Key already used for another booking")
	}

	switch attempt.Status {
	case entity.AttemptStatusProcessing:
		return nil, fmt.Errorf("key %s: %w", attempt.IdempotencyKey, ErrAttemptInProgress)
	case entity.AttemptStatusSucceeded:
		if attempt.PaymentID == nil {
			return nil, persistErr("replay attempt", errors.New("succeeded attempt has no payment"))
		}
		payment, err := s.repo.Payment.FindByID(ctx, *attempt.PaymentID)
		if err != nil {
			return nil, persistErr("find payment", err)
		}
		if payment == nil {
			return nil, fmt.Errorf("payment %s: %w", attempt.PaymentID, ErrNotFound)
		}
		s.log.Info("Payment replayed", zap.String("attempt_id", attempt.ID.String()))
		resp := response.PaymentToResponse(payment)
		return &resp, nil
	default:
		return nil, fmt.Errorf("key %s is %s: %w", attempt.IdempotencyKey, attempt.Status, ErrAttemptClosed)
	}
}

func (s *paymentService) Quote(ctx context.Context, actor Actor, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	booking, err := s.payableBooking(ctx, actor, req.BookingID, req)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		BookingID:  booking.ID.String(),
		Total:      booking.TotalPrice,
		Commission: commission.Of(booking.TotalPrice),
		Amount:     commission.ChargeFor(booking.TotalPrice),
	}, nil
}

func (s *paymentService) GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse {
	names := map[entity.PaymentMethod]string{
		entity.PaymentMethodMTN:    "MTN Mobile Money",
		entity.PaymentMethodOrange: "Orange Money",
	}
	formats := map[entity.PaymentMethod]string{
		entity.PaymentMethodMTN:    "+237 65X-69X XXX XXX",
		entity.PaymentMethodOrange: "+237 69X XXX XXX",
	}

	methods := make([]response.PaymentMethodResponse, 0, 2)
	for _, m := range gateway.Methods() {
		methods = append(methods, response.PaymentMethodResponse{
			Code:        m,
			Name:        names[m],
			PhoneFormat: formats[m],
		})
	}
	return methods
}

// payableBooking loads a booking that the acting student owns.
func (s *paymentService) payableBooking(ctx context.Context, actor Actor, bookingID string, req any) (*entity.Booking, error) {
	if !actor.IsStudent() {
		return nil, fmt.Errorf("only students pay for bookings: %w", ErrForbidden)
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fieldError("booking_id", "Must be a valid UUID")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, persistErr("find booking", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.StudentID != actor.UserID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrForbidden)
	}

	return booking, nil
}
