package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// BookingPaymentStatus is the payment side of a booking, distinct from the
// status of individual Payment rows.
type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
)

type Booking struct {
	Base
	RoomID        uuid.UUID            `db:"room_id"`
	StudentID     uuid.UUID            `db:"student_id"`
	StartDate     time.Time            `db:"start_date"`
	EndDate       time.Time            `db:"end_date"`
	TotalPrice    float64              `db:"total_price"`
	Status        BookingStatus        `db:"status"`
	PaymentStatus BookingPaymentStatus `db:"payment_status"`
	Notes         *string              `db:"notes"`
}
