package usecase

import (
	"student-housing/internal/data/entity"

	"github.com/google/uuid"
)

// party is how an actor relates to one booking.
type party int

const (
	partyNone party = iota
	partyStudent
	partyOwner
	partyAdmin
)

func partyOf(a Actor, booking *entity.Booking, roomOwner uuid.UUID) party {
	switch {
	case a.IsAdmin():
		return partyAdmin
	case a.IsOwner() && roomOwner == a.UserID:
		return partyOwner
	case a.IsStudent() && booking.StudentID == a.UserID:
		return partyStudent
	}
	return partyNone
}

type transition struct {
	from, to entity.BookingStatus
}

// allowedTransitions lists who may move a booking between two statuses.
// Nothing moves into completed.
var allowedTransitions = map[transition][]party{
	{entity.BookingStatusPending, entity.BookingStatusConfirmed}:   {partyOwner, partyAdmin},
	{entity.BookingStatusPending, entity.BookingStatusCancelled}:   {partyStudent, partyOwner, partyAdmin},
	{entity.BookingStatusConfirmed, entity.BookingStatusCancelled}: {partyOwner, partyAdmin},
}

// checkTransition returns ErrForbidden when the actor has nothing to do with
// the booking and ErrInvalidTransition when the move is not allowed for them.
func checkTransition(p party, from, to entity.BookingStatus) error {
	if p == partyNone {
		return ErrForbidden
	}
	for _, allowed := range allowedTransitions[transition{from, to}] {
		if allowed == p {
			return nil
		}
	}
	return ErrInvalidTransition
}

// canDelete applies the hard-delete rules: admins delete anything, owners
// any booking on their rooms, students their own pending or cancelled ones.
func canDelete(p party, booking *entity.Booking) bool {
	switch p {
	case partyAdmin, partyOwner:
		return true
	case partyStudent:
		return booking.Status == entity.BookingStatusPending || booking.Status == entity.BookingStatusCancelled
	}
	return false
}

// settledStatus is the booking status after a successful payment. Only open
// bookings move; a cancelled or completed one keeps its status.
func settledStatus(current entity.BookingStatus) entity.BookingStatus {
	switch current {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed:
		return entity.BookingStatusConfirmed
	}
	return current
}
