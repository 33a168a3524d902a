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

// RoomFilter narrows room listings. Nil fields are ignored.
type RoomFilter struct {
	OwnerID   *uuid.UUID
	Available *bool
	District  string
	MinPrice  *float64
	MaxPrice  *float64
}

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	List(ctx context.Context, filter RoomFilter, limit, offset int) ([]*entity.Room, error)
	Count(ctx context.Context, filter RoomFilter) (int64, error)
	Update(ctx context.Context, room *entity.Room) error

	// Bulk and dashboard queries
	CountAvailability(ctx context.Context, ownerID *uuid.UUID) (total, available int64, err error)
	SetAvailability(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID, available bool) (int64, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID) (int64, error)
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, owner_id, title, district, price, available, created_at, updated_at`

// roomWhere keeps positional parameters $1..$5 in the order of filterArgs.
const roomWhere = `
	WHERE ($1::uuid IS NULL OR owner_id = $1)
	  AND ($2::boolean IS NULL OR available = $2)
	  AND ($3 = '' OR LOWER(district) = LOWER($3))
	  AND ($4::numeric IS NULL OR price >= $4)
	  AND ($5::numeric IS NULL OR price <= $5)
`

func (f RoomFilter) args() []any {
	return []any{f.OwnerID, f.Available, f.District, f.MinPrice, f.MaxPrice}
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.OwnerID,
		&room.Title,
		&room.District,
		&room.Price,
		&room.Available,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, owner_id, title, district, price, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.OwnerID,
		room.Title,
		room.District,
		room.Price,
		room.Available,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create room in district %q: %w", room.District, ErrReference)
		}
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("owner_id", room.OwnerID.String()),
		)
		return fmt.Errorf("create room %s: %w", room.Title, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return room, nil
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter, limit, offset int) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms` + roomWhere + `
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`

	rows, err := r.db.Query(ctx, query, append(filter.args(), limit, offset)...)
	if err != nil {
		r.log.Error("Failed to list rooms",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) Count(ctx context.Context, filter RoomFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms` + roomWhere

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.args()...).Scan(&count); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}

	return count, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET title = $2, district = $3, price = $4, available = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.Title,
		room.District,
		room.Price,
		room.Available,
		room.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("move room to district %q: %w", room.District, ErrReference)
		}
		r.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", room.ID.String()))
		return fmt.Errorf("update room %s: %w", room.ID.String(), err)
	}

	return nil
}

// CountAvailability returns the number of rooms and how many of them are
// available, restricted to one owner when ownerID is set.
func (r *roomRepository) CountAvailability(ctx context.Context, ownerID *uuid.UUID) (int64, int64, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE available)
		FROM rooms
		WHERE ($1::uuid IS NULL OR owner_id = $1)
	`

	var total, available int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&total, &available); err != nil {
		r.log.Error("Failed to count room availability", zap.Error(err))
		return 0, 0, fmt.Errorf("count room availability: %w", err)
	}

	return total, available, nil
}

// SetAvailability flips every listed room in one statement. With ownerID set,
// rooms of other owners are left untouched and not counted.
func (r *roomRepository) SetAvailability(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID, available bool) (int64, error) {
	query := `
		UPDATE rooms
		SET available = $3, updated_at = NOW()
		WHERE id = ANY($1::uuid[])
		  AND ($2::uuid IS NULL OR owner_id = $2)
	`

	result, err := r.db.Exec(ctx, query, uuidStrings(ids), ownerID, available)
	if err != nil {
		r.log.Error("Failed to set room availability", zap.Error(err), zap.Int("count", len(ids)))
		return 0, fmt.Errorf("set availability on %d rooms: %w", len(ids), err)
	}

	return result.RowsAffected(), nil
}

func (r *roomRepository) DeleteMany(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID) (int64, error) {
	query := `
		DELETE FROM rooms
		WHERE id = ANY($1::uuid[])
		  AND ($2::uuid IS NULL OR owner_id = $2)
	`

	result, err := r.db.Exec(ctx, query, uuidStrings(ids), ownerID)
	if err != nil {
		r.log.Error("Failed to delete rooms", zap.Error(err), zap.Int("count", len(ids)))
		return 0, fmt.Errorf("delete %d rooms: %w", len(ids), err)
	}

	r.log.Info("Rooms deleted", zap.Int64("deleted", result.RowsAffected()))
	return result.RowsAffected(), nil
}
