package repository

import (
	"errors"

	"student-housing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReference is returned when a write breaks a foreign key, either by
	// pointing at a missing row or by removing a row still referenced.
	ErrReference = errors.New("foreign key violation")
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Room     RoomRepository
	District DistrictRepository
	Booking  BookingRepository
	Payment  PaymentRepository
	Attempt  AttemptRepository
	Tx       Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgTransactor{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Room:     NewRoomRepository(db, log),
		District: NewDistrictRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Payment:  NewPaymentRepository(db, log),
		Attempt:  NewAttemptRepository(db, log),
	}
}

// Scope restricts booking and payment reads to one viewpoint. The zero
// value sees everything (admin).
type Scope struct {
	StudentID *uuid.UUID
	OwnerID   *uuid.UUID
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation matches foreign_key_violation and restrict_violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23503" || pgErr.Code == "23001")
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
