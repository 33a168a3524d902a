package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DistrictService manages the districts rooms are listed under. Reads are
// public, writes are admin only.
type DistrictService interface {
	ListDistricts(ctx context.Context) ([]response.DistrictResponse, error)
	CreateDistrict(ctx context.Context, actor Actor, req *request.DistrictRequest) (*response.DistrictResponse, error)
	UpdateDistrict(ctx context.Context, actor Actor, districtID string, req *request.DistrictRequest) (*response.DistrictResponse, error)
	DeleteDistrict(ctx context.Context, actor Actor, districtID string) error
}

type districtService struct {
	districtRepo repository.DistrictRepository
	log          *zap.Logger
}

func NewDistrictService(districtRepo repository.DistrictRepository, log *zap.Logger) DistrictService {
	return &districtService{
		districtRepo: districtRepo,
		log:          log.With(zap.String("service", "district")),
	}
}

func (s *districtService) ListDistricts(ctx context.Context) ([]response.DistrictResponse, error) {
	districts, err := s.districtRepo.List(ctx)
	if err != nil {
		return nil, persistErr("list districts", err)
	}

	items := make([]response.DistrictResponse, 0, len(districts))
	for _, d := range districts {
		items = append(items, response.DistrictToResponse(d))
	}
	return items, nil
}

func (s *districtService) CreateDistrict(ctx context.Context, actor Actor, req *request.DistrictRequest) (*response.DistrictResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	district := &entity.District{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := s.districtRepo.Create(ctx, district); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("district %q: %w", district.Name, ErrDistrictExists)
		}
		return nil, persistErr("create district", err)
	}

	s.log.Info("District created",
		zap.String("district_id", district.ID.String()),
		zap.String("name", district.Name),
	)

	resp := response.DistrictToResponse(district)
	return &resp, nil
}

// UpdateDistrict renames a district. Rooms listed under the old name move
// with it.
func (s *districtService) UpdateDistrict(ctx context.Context, actor Actor, districtID string, req *request.DistrictRequest) (*response.DistrictResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	district, err := s.findDistrict(ctx, districtID)
	if err != nil {
		return nil, err
	}

	district.Name = strings.TrimSpace(req.Name)
	district.Description = req.Description
	district.UpdatedAt = time.Now()

	if err := s.districtRepo.Update(ctx, district); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("district %q: %w", district.Name, ErrDistrictExists)
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("district %s: %w", districtID, ErrNotFound)
		}
		return nil, persistErr("update district", err)
	}

	resp := response.DistrictToResponse(district)
	return &resp, nil
}

func (s *districtService) DeleteDistrict(ctx context.Context, actor Actor, districtID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	id, err := uuid.Parse(districtID)
	if err != nil {
		return fieldError("id", "Must be a valid UUID")
	}

	if err := s.districtRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReference):
			return fmt.Errorf("district %s: %w", districtID, ErrDistrictInUse)
		case errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("district %s: %w", districtID, ErrNotFound)
		}
		return persistErr("delete district", err)
	}

	s.log.Info("District deleted",
		zap.String("district_id", districtID),
		zap.String("actor_id", actor.UserID.String()),
	)
	return nil
}

func (s *districtService) findDistrict(ctx context.Context, districtID string) (*entity.District, error) {
	id, err := uuid.Parse(districtID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}
	district, err := s.districtRepo.FindByID(ctx, id)
	if err != nil {
		return nil, persistErr("find district", err)
	}
	if district == nil {
		return nil, fmt.Errorf("district %s: %w", districtID, ErrNotFound)
	}
	return district, nil
}
