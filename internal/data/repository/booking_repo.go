package repository

import (
	"context"
	"errors"
	"fmt"

	"student-housing/internal/data/entity"
	"student-housing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Booking, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, scope Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	CountByStatus(ctx context.Context, scope Scope) (map[entity.BookingStatus]int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status entity.BookingStatus) (int64, error)
	MarkPaid(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.room_id, b.student_id, b.start_date, b.end_date, b.total_price,
	b.status, b.payment_status, b.notes, b.created_at, b.updated_at`

// bookingScope filters on $1 (student) and $2 (room owner).
const bookingScope = `
	FROM bookings b
	JOIN rooms r ON r.id = b.room_id
	WHERE ($1::uuid IS NULL OR b.student_id = $1)
	  AND ($2::uuid IS NULL OR r.owner_id = $2)
`

func (s Scope) args() []any {
	return []any{s.StudentID, s.OwnerID}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.StudentID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) scanAll(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, student_id, start_date, end_date, total_price,
			status, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.StudentID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("room_id", booking.RoomID.String()),
			zap.String("student_id", booking.StudentID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// FindManyForUpdate loads and row-locks the listed bookings. Missing ids are
// simply absent from the result.
func (r *bookingRepository) FindManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ANY($1::uuid[]) FOR UPDATE`

	rows, err := r.db.Query(ctx, query, uuidStrings(ids))
	if err != nil {
		r.log.Error("Failed to lock bookings", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("lock %d bookings: %w", len(ids), err)
	}

	return r.scanAll(rows)
}

func (r *bookingRepository) List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingScope + `
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, append(scope.args(), limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return r.scanAll(rows)
}

func (r *bookingRepository) Count(ctx context.Context, scope Scope) (int64, error) {
	query := `SELECT COUNT(*)` + bookingScope

	var count int64
	if err := r.db.QueryRow(ctx, query, scope.args()...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id.String(), pgx.ErrNoRows)
	}

	return nil
}

// CountByStatus groups the bookings visible through scope by status.
// Statuses with no bookings are absent from the map.
func (r *bookingRepository) CountByStatus(ctx context.Context, scope Scope) (map[entity.BookingStatus]int64, error) {
	query := `SELECT b.status, COUNT(*)` + bookingScope + ` GROUP BY b.status`

	rows, err := r.db.Query(ctx, query, scope.args()...)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.BookingStatus]int64)
	for rows.Next() {
		var status entity.BookingStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan booking status count: %w", err)
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking status %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking status %s: %w", id.String(), pgx.ErrNoRows)
	}

	return nil
}

func (r *bookingRepository) UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status entity.BookingStatus) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = ANY($1::uuid[])
	`

	result, err := r.db.Exec(ctx, query, uuidStrings(ids), status)
	if err != nil {
		r.log.Error("Failed to update booking statuses",
			zap.Error(err),
			zap.Int("count", len(ids)),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("update status of %d bookings: %w", len(ids), err)
	}

	return result.RowsAffected(), nil
}

// MarkPaid sets payment_status to paid and status to status in one
// statement. Callers hold the row lock and choose the status.
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, entity.BookingPaymentPaid)
	if err != nil {
		r.log.Error("Failed to mark booking paid", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("mark booking paid %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark booking paid %s: %w", id.String(), pgx.ErrNoRows)
	}

	return nil
}
