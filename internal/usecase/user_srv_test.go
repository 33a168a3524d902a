package usecase

import (
	"context"
	"errors"
	"testing"

	"student-housing/internal/data/entity"
	"student-housing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_SetStatusDeactivates(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewUserService(m.user, zap.NewNop())

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Name: "Bob", Role: entity.RoleOwner, IsActive: true}
	m.user.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	m.user.On("SetActive", mock.Anything, user.ID, false).Return(nil).Once()

	off := false
	resp, err := svc.SetStatus(context.Background(), admin, user.ID.String(), &request.UserStatusRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	// Already inactive: nothing to write.
	resp, err = svc.SetStatus(context.Background(), admin, user.ID.String(), &request.UserStatusRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestUserService_SetStatusRules(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewUserService(m.user, zap.NewNop())

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	off := false

	_, err := svc.SetStatus(context.Background(), admin, admin.UserID.String(), &request.UserStatusRequest{Active: &off})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetStatus(context.Background(), admin, uuid.NewString(), &request.UserStatusRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetStatus(context.Background(), admin, "not-a-uuid", &request.UserStatusRequest{Active: &off})
	assert.ErrorIs(t, err, ErrValidation)

	owner := Actor{UserID: uuid.New(), Role: entity.RoleOwner}
	_, err = svc.SetStatus(context.Background(), owner, uuid.NewString(), &request.UserStatusRequest{Active: &off})
	assert.ErrorIs(t, err, ErrForbidden)

	missing := uuid.New()
	m.user.On("FindByID", mock.Anything, missing).Return(nil, nil)
	_, err = svc.SetStatus(context.Background(), admin, missing.String(), &request.UserStatusRequest{Active: &off})
	assert.ErrorIs(t, err, ErrNotFound)

	broken := uuid.New()
	m.user.On("FindByID", mock.Anything, broken).Return(&entity.User{Base: entity.Base{ID: broken}, IsActive: true}, nil)
	m.user.On("SetActive", mock.Anything, broken, false).Return(errors.New("connection reset"))
	_, err = svc.SetStatus(context.Background(), admin, broken.String(), &request.UserStatusRequest{Active: &off})
	assert.ErrorIs(t, err, ErrPersistence)
}
