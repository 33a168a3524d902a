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
	"student-housing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo describes where a login comes from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // users and sessions
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, persistErr("check email", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	// 4. Save user
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, persistErr("create account", err)
	}

	// 5. Log the new user in
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, persistErr("find user", err)
	}
	if user == nil {
		s.log.Warn("User not found for login")
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Deactivated accounts cannot log in
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("account is deactivated: %w", ErrForbidden)
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, persistErr("create session", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fieldError("token", "Invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return persistErr("logout", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
