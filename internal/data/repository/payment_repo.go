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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context, scope Scope) (int64, error)

	// Business queries
	CountCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
	Totals(ctx context.Context, scope Scope) (count int64, sum float64, err error)
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `p.id, p.booking_id, p.attempt_id, p.amount, p.commission, p.payment_method,
	p.phone, p.transaction_id, p.status, p.payment_date, p.created_at, p.updated_at`

// paymentScope filters on $1 (student of the booking) and $2 (owner of the room).
const paymentScope = `
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN rooms r ON r.id = b.room_id
	WHERE ($1::uuid IS NULL OR b.student_id = $1)
	  AND ($2::uuid IS NULL OR r.owner_id = $2)
`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.AttemptID,
		&payment.Amount,
		&payment.Commission,
		&payment.Method,
		&payment.Phone,
		&payment.TransactionID,
		&payment.Status,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, attempt_id, amount, commission, payment_method,
			phone, transaction_id, status, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.AttemptID,
		payment.Amount,
		payment.Commission,
		payment.Method,
		payment.Phone,
		payment.TransactionID,
		payment.Status,
		payment.PaymentDate,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID", zap.Error(err), zap.String("payment_id", id.String()))
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

// FindByBookingID returns the latest completed payment of a booking.
func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.booking_id = $1 AND p.status = $2
		ORDER BY p.payment_date DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID, entity.PaymentStatusCompleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + paymentScope + `
		ORDER BY p.payment_date DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, append(scope.args(), limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) Count(ctx context.Context, scope Scope) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+paymentScope, scope.args()...).Scan(&count); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

func (r *paymentRepository) CountCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM payments WHERE booking_id = $1 AND status = $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, bookingID, entity.PaymentStatusCompleted).Scan(&count); err != nil {
		r.log.Error("Failed to count completed payments",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("count completed payments of %s: %w", bookingID.String(), err)
	}

	return count, nil
}

// Totals returns the number and the summed amount of completed payments
// visible through scope.
func (r *paymentRepository) Totals(ctx context.Context, scope Scope) (int64, float64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(p.amount), 0)::float8` + paymentScope + ` AND p.status = $3`

	var count int64
	var sum float64
	err := r.db.QueryRow(ctx, query, append(scope.args(), entity.PaymentStatusCompleted)...).Scan(&count, &sum)
	if err != nil {
		r.log.Error("Failed to total payments", zap.Error(err))
		return 0, 0, fmt.Errorf("total payments: %w", err)
	}

	return count, sum, nil
}
