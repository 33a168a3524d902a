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

type DistrictRepository interface {
	List(ctx context.Context) ([]*entity.District, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.District, error)
	Create(ctx context.Context, district *entity.District) error
	Update(ctx context.Context, district *entity.District) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type districtRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDistrictRepository(db database.Querier, log *zap.Logger) DistrictRepository {
	return &districtRepository{
		db:  db,
		log: log.With(zap.String("repository", "district")),
	}
}

const districtColumns = `id, name, description, created_at, updated_at`

func scanDistrict(row pgx.Row) (*entity.District, error) {
	var d entity.District
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns every district ordered by name. The set is small enough to
// skip pagination.
func (r *districtRepository) List(ctx context.Context) ([]*entity.District, error) {
	rows, err := r.db.Query(ctx, `SELECT `+districtColumns+` FROM districts ORDER BY name`)
	if err != nil {
		r.log.Error("Failed to list districts", zap.Error(err))
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()

	var districts []*entity.District
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			r.log.Error("Failed to scan district row", zap.Error(err))
			return nil, fmt.Errorf("scan district row: %w", err)
		}
		districts = append(districts, d)
	}

	return districts, rows.Err()
}

func (r *districtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.District, error) {
	query := `SELECT ` + districtColumns + ` FROM districts WHERE id = $1`

	d, err := scanDistrict(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find district", zap.Error(err), zap.String("district_id", id.String()))
		return nil, fmt.Errorf("find district %s: %w", id.String(), err)
	}

	return d, nil
}

func (r *districtRepository) Create(ctx context.Context, district *entity.District) error {
	query := `
		INSERT INTO districts (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		district.ID,
		district.Name,
		district.Description,
		district.CreatedAt,
		district.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create district %s: %w", district.Name, ErrDuplicate)
		}
		r.log.Error("Failed to create district", zap.Error(err), zap.String("name", district.Name))
		return fmt.Errorf("create district %s: %w", district.Name, err)
	}

	return nil
}

// Update renames a district in place. Rooms follow through ON UPDATE CASCADE.
func (r *districtRepository) Update(ctx context.Context, district *entity.District) error {
	query := `
		UPDATE districts
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		district.ID,
		district.Name,
		district.Description,
		district.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rename district to %s: %w", district.Name, ErrDuplicate)
		}
		r.log.Error("Failed to update district", zap.Error(err), zap.String("district_id", district.ID.String()))
		return fmt.Errorf("update district %s: %w", district.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update district %s: %w", district.ID.String(), pgx.ErrNoRows)
	}

	return nil
}

// Delete fails with ErrReference while any room is still listed under the
// district.
func (r *districtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM districts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete district %s: %w", id.String(), ErrReference)
		}
		r.log.Error("Failed to delete district", zap.Error(err), zap.String("district_id", id.String()))
		return fmt.Errorf("delete district %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete district %s: %w", id.String(), pgx.ErrNoRows)
	}

	return nil
}
