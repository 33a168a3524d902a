package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a mobile-money operator.
type PaymentMethod string

const (
	PaymentMethodMTN    PaymentMethod = "mtn"
	PaymentMethodOrange PaymentMethod = "orange"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodMTN || m == PaymentMethodOrange
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	Base
	BookingID     uuid.UUID     `db:"booking_id"`
	AttemptID     *uuid.UUID    `db:"attempt_id"`
	Amount        float64       `db:"amount"`
	Commission    float64       `db:"commission"`
	Method        PaymentMethod `db:"payment_method"`
	Phone         string        `db:"phone"`
	TransactionID string        `db:"transaction_id"`
	Status        PaymentStatus `db:"status"`
	PaymentDate   time.Time     `db:"payment_date"`
}

type AttemptStatus string

const (
	AttemptStatusProcessing AttemptStatus = "processing"
	AttemptStatusSucceeded  AttemptStatus = "succeeded"
	AttemptStatusFailed     AttemptStatus = "failed"
	AttemptStatusAbandoned  AttemptStatus = "abandoned"
)

// PaymentAttempt records one gateway run, keyed by the client's
// idempotency key, whatever its outcome.
type PaymentAttempt struct {
	Base
	BookingID      uuid.UUID     `db:"booking_id"`
	IdempotencyKey string        `db:"idempotency_key"`
	Method         PaymentMethod `db:"method"`
	Phone          string        `db:"phone"`
	Amount         float64       `db:"amount"`
	Status         AttemptStatus `db:"status"`
	FailureReason  *string       `db:"failure_reason"`
	PaymentID      *uuid.UUID    `db:"payment_id"`
}
