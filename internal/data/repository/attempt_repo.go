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

// AttemptRepository stores payment attempts keyed by idempotency key.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *entity.PaymentAttempt) error
	FindByKey(ctx context.Context, key string) (*entity.PaymentAttempt, error)
	MarkSucceeded(ctx context.Context, id, paymentID uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID, status entity.AttemptStatus, reason string) error
}

type attemptRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAttemptRepository(db database.Querier, log *zap.Logger) AttemptRepository {
	return &attemptRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_attempt")),
	}
}

// Create returns ErrDuplicate when the idempotency key is already taken.
func (r *attemptRepository) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	query := `
		INSERT INTO payment_attempts (id, booking_id, idempotency_key, method, phone, amount,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		attempt.ID,
		attempt.BookingID,
		attempt.IdempotencyKey,
		attempt.Method,
		attempt.Phone,
		attempt.Amount,
		attempt.Status,
		attempt.CreatedAt,
		attempt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create payment attempt: %w", ErrDuplicate)
		}
		r.log.Error("Failed to create payment attempt",
			zap.Error(err),
			zap.String("booking_id", attempt.BookingID.String()),
		)
		return fmt.Errorf("create payment attempt: %w", err)
	}

	return nil
}

func (r *attemptRepository) FindByKey(ctx context.Context, key string) (*entity.PaymentAttempt, error) {
	query := `
		SELECT id, booking_id, idempotency_key, method, phone, amount, status,
		       failure_reason, payment_id, created_at, updated_at
		FROM payment_attempts
		WHERE idempotency_key = $1
	`

	var attempt entity.PaymentAttempt
	err := r.db.QueryRow(ctx, query, key).Scan(
		&attempt.ID,
		&attempt.BookingID,
		&attempt.IdempotencyKey,
		&attempt.Method,
		&attempt.Phone,
		&attempt.Amount,
		&attempt.Status,
		&attempt.FailureReason,
		&attempt.PaymentID,
		&attempt.CreatedAt,
		&attempt.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment attempt", zap.Error(err))
		return nil, fmt.Errorf("find payment attempt: %w", err)
	}

	return &attempt, nil
}

func (r *attemptRepository) MarkSucceeded(ctx context.Context, id, paymentID uuid.UUID) error {
	query := `
		UPDATE payment_attempts
		SET status = $2, payment_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.Exec(ctx, query, id, entity.AttemptStatusSucceeded, paymentID, entity.AttemptStatusProcessing)
	if err != nil {
		r.log.Error("Failed to mark attempt succeeded", zap.Error(err), zap.String("attempt_id", id.String()))
		return fmt.Errorf("mark attempt %s succeeded: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark attempt %s succeeded: attempt is not processing", id.String())
	}

	return nil
}

// Close ends a processing attempt as failed or abandoned. Attempts that
// already left processing are not touched.
func (r *attemptRepository) Close(ctx context.Context, id uuid.UUID, status entity.AttemptStatus, reason string) error {
	query := `
		UPDATE payment_attempts
		SET status = $2, failure_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	_, err := r.db.Exec(ctx, query, id, status, reason, entity.AttemptStatusProcessing)
	if err != nil {
		r.log.Error("Failed to close payment attempt",
			zap.Error(err),
			zap.String("attempt_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("close attempt %s: %w", id.String(), err)
	}

	return nil
}
