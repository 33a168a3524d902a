// Package gateway simulates the mobile-money confirmation round-trip
// (MTN MoMo, Orange Money) for tenant payments.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"student-housing/internal/commission"
	"student-housing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrUnsupportedMethod  = errors.New("unsupported payment method")
	ErrDeclined           = errors.New("payment declined by operator")
)

var phonePatterns = map[entity.PaymentMethod]*regexp.Regexp{
	entity.PaymentMethodMTN:    regexp.MustCompile(`^(\+237)?6[5-9]\d{7}$`),
	entity.PaymentMethodOrange: regexp.MustCompile(`^(\+237)?6[9]\d{7}$`),
}

// Charge is a validated payment request waiting for operator confirmation.
type Charge struct {
	BookingID  uuid.UUID
	Method     entity.PaymentMethod
	Phone      string
	Total      float64
	Commission float64
	Amount     float64
}

// Result is what the operator returns for an accepted charge.
type Result struct {
	BookingID     uuid.UUID
	Amount        float64
	Method        entity.PaymentMethod
	TransactionID string
	Phone         string
	Commission    float64
	Status        entity.PaymentStatus
}

// Resolver decides whether the operator accepts a charge.
type Resolver interface {
	Resolve(ctx context.Context, charge *Charge) bool
}

// Simulator is an in-process stand-in for the operators' USSD confirmation.
type Simulator struct {
	delay    time.Duration
	resolver Resolver
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Simulator)

// WithClock overrides time.Now, used for transaction ids.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func NewSimulator(delay time.Duration, resolver Resolver, log *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		delay:    delay,
		resolver: resolver,
		now:      time.Now,
		log:      log.With(zap.String("component", "gateway")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidatePhoneNumber reports whether phone belongs to the operator's
// numbering range. Whitespace is ignored.
func ValidatePhoneNumber(phone string, method entity.PaymentMethod) bool {
	pattern, ok := phonePatterns[method]
	if !ok {
		return false
	}
	return pattern.MatchString(cleanPhone(phone))
}

// Methods lists the supported operators.
func Methods() []entity.PaymentMethod {
	return []entity.PaymentMethod{entity.PaymentMethodMTN, entity.PaymentMethodOrange}
}

// Initiate validates the request and prices the charge for a booking total.
func (s *Simulator) Initiate(bookingID uuid.UUID, method, phone string, total float64) (*Charge, error) {
	if strings.TrimSpace(method) == "" {
		return nil, fmt.Errorf("%w: payment_method", ErrMissingField)
	}
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: phone_number", ErrMissingField)
	}

	m := entity.PaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if !ValidatePhoneNumber(phone, m) {
		return nil, fmt.Errorf("%w for %s", ErrInvalidPhoneNumber, strings.ToUpper(string(m)))
	}

	return &Charge{
		BookingID:  bookingID,
		Method:     m,
		Phone:      cleanPhone(phone),
		Total:      total,
		Commission: commission.Of(total),
		Amount:     commission.ChargeFor(total),
	}, nil
}

// Process waits for the simulated operator round-trip and resolves the
// charge. It returns ctx.Err() if the caller gives up first.
func (s *Simulator) Process(ctx context.Context, charge *Charge) (*Result, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Warn("Payment abandoned before confirmation",
				zap.String("booking_id", charge.BookingID.String()),
				zap.String("method", string(charge.Method)))
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if !s.resolver.Resolve(ctx, charge) {
		s.log.Info("Payment declined",
			zap.String("booking_id", charge.BookingID.String()),
			zap.String("method", string(charge.Method)),
			zap.Float64("amount", charge.Amount))
		return nil, ErrDeclined
	}

	result := &Result{
		BookingID:     charge.BookingID,
		Amount:        charge.Amount,
		Method:        charge.Method,
		TransactionID: s.transactionID(charge.Method),
		Phone:         charge.Phone,
		Commission:    charge.Commission,
		Status:        entity.PaymentStatusCompleted,
	}

	s.log.Info("Payment confirmed",
		zap.String("booking_id", charge.BookingID.String()),
		zap.String("transaction_id", result.TransactionID),
		zap.Float64("amount", result.Amount))

	return result, nil
}

// transactionID has the form {METHOD}_{unix millis}_{uuid}.
func (s *Simulator) transactionID(method entity.PaymentMethod) string {
	return fmt.Sprintf("%s_%d_%s", strings.ToUpper(string(method)), s.now().UnixMilli(), uuid.NewString())
}

func cleanPhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}
