package usecase

import (
	"context"
	"errors"
	"fmt"

	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	SetStatus(ctx context.Context, actor Actor, userID string, req *request.UserStatusRequest) (*response.UserResponse, error)
	BulkDelete(ctx context.Context, actor Actor, req *request.BulkDeleteRequest) (*response.BulkCountResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, persistErr("get profile", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", actor.UserID, ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, persistErr("list users", err)
	}

	total, err := us.userRepo.Count(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, persistErr("count users", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// SetStatus activates or deactivates an account. A deactivated user can no
// longer log in and their open sessions stop authenticating.
func (us *userService) SetStatus(ctx context.Context, actor Actor, userID string, req *request.UserStatusRequest) (*response.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fieldError("id", "Must be a valid UUID")
	}
	if id == actor.UserID && !*req.Active {
		return nil, fieldError("active", "Cannot deactivate your own account")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, persistErr("find user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	if user.IsActive != *req.Active {
		if err := us.userRepo.SetActive(ctx, id, *req.Active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
			}
			return nil, persistErr("set user status", err)
		}
		user.IsActive = *req.Active

		us.log.Info("User status changed",
			zap.String("user_id", userID),
			zap.Bool("active", user.IsActive),
			zap.String("actor_id", actor.UserID.String()),
		)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// BulkDelete removes users in a single statement. Admins cannot delete
// their own account this way.
func (us *userService) BulkDelete(ctx context.Context, actor Actor, req *request.BulkDeleteRequest) (*response.BulkCountResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	ids, err := parseIDs(req)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == actor.UserID {
			return nil, fieldError("ids", "Cannot delete your own account")
		}
	}

	n, err := us.userRepo.DeleteMany(ctx, ids)
	if err != nil {
		return nil, persistErr("delete users", err)
	}

	us.log.Info("Users bulk deleted",
		zap.Int("requested", len(ids)),
		zap.Int64("deleted", n),
		zap.String("actor_id", actor.UserID.String()),
	)

	return &response.BulkCountResponse{Requested: len(ids), Affected: n}, nil
}

func parseIDs(req *request.BulkDeleteRequest) ([]uuid.UUID, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return toUUIDs(req.IDs)
}

func toUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fieldError("ids", "Must be a list of valid UUIDs")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
