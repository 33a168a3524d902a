package usecase

import (
	"context"
	"errors"
	"testing"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboard_OwnerStats(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	ownerID := uuid.New()
	scope := repository.Scope{OwnerID: &ownerID}
	m.room.On("CountAvailability", mock.Anything, &ownerID).Return(int64(4), int64(1), nil)
	m.booking.On("Count", mock.Anything, scope).Return(int64(3), nil)
	m.payment.On("Totals", mock.Anything, scope).Return(int64(1), 141750.0, nil)

	stats, err := svc.OwnerStats(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalRooms)
	assert.Equal(t, int64(1), stats.AvailableRooms)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, 141750.0, stats.GrossRevenue)
	assert.Equal(t, 7087.5, stats.Commission)
	assert.Equal(t, 134662.5, stats.NetRevenue)
	assert.Equal(t, 22444.0, stats.MonthlyRevenue)
	assert.Equal(t, 75.0, stats.OccupancyRate)
	assert.Equal(t, repository.SnapshotTx, m.tx.opts[0])
}

func TestDashboard_OwnerStatsNoRooms(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	ownerID := uuid.New()
	m.room.On("CountAvailability", mock.Anything, &ownerID).Return(int64(0), int64(0), nil)
	m.booking.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	m.payment.On("Totals", mock.Anything, mock.Anything).Return(int64(0), 0.0, nil)

	stats, err := svc.OwnerStats(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Zero(t, stats.OccupancyRate)
	assert.Zero(t, stats.NetRevenue)
}

func TestDashboard_AdminStats(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	m.user.On("Count", mock.Anything).Return(int64(10), nil)
	m.room.On("CountAvailability", mock.Anything, (*uuid.UUID)(nil)).Return(int64(6), int64(2), nil)
	m.booking.On("CountByStatus", mock.Anything, repository.Scope{}).Return(map[entity.BookingStatus]int64{
		entity.BookingStatusPending:   2,
		entity.BookingStatusConfirmed: 3,
		entity.BookingStatusCancelled: 1,
	}, nil)
	m.payment.On("Totals", mock.Anything, repository.Scope{}).Return(int64(3), 300000.0, nil)

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(6), stats.TotalRooms)
	assert.Equal(t, int64(6), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.PendingBookings)
	assert.Equal(t, 300000.0, stats.TotalRevenue)
	assert.Equal(t, 15000.0, stats.Commission)
	assert.Equal(t, int64(7), stats.ActiveUsers)
	assert.True(t, stats.ActiveUsersEstimated)
}

func TestDashboard_StudentStats(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	studentID := uuid.New()
	scope := repository.Scope{StudentID: &studentID}
	m.booking.On("CountByStatus", mock.Anything, scope).Return(map[entity.BookingStatus]int64{
		entity.BookingStatusConfirmed: 1,
	}, nil)
	m.payment.On("Totals", mock.Anything, scope).Return(int64(1), 141750.0, nil)

	stats, err := svc.StudentStats(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ConfirmedBookings)
	assert.Zero(t, stats.PendingBookings)
	assert.Equal(t, int64(1), stats.PaymentsCount)
	assert.Equal(t, 141750.0, stats.TotalPaid)
}

func TestDashboard_StatsFailureIsPersistence(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	m.user.On("Count", mock.Anything).Return(int64(0), errors.New("timeout"))

	_, err := svc.AdminStats(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 1, m.tx.rollbacks)
}

func TestDashboard_Overview(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	student := Actor{UserID: uuid.New(), Role: entity.RoleStudent}
	studentID := student.UserID
	scope := repository.Scope{StudentID: &studentID}

	m.booking.On("CountByStatus", mock.Anything, scope).Return(map[entity.BookingStatus]int64{}, nil)
	m.payment.On("Totals", mock.Anything, scope).Return(int64(0), 0.0, nil)
	m.booking.On("List", mock.Anything, scope, overviewRecent, 0).Return([]*entity.Booking{
		{Base: entity.Base{ID: uuid.New()}, StudentID: studentID, Status: entity.BookingStatusPending},
	}, nil)
	m.payment.On("List", mock.Anything, scope, overviewRecent, 0).Return([]*entity.Payment{}, nil)

	overview, err := svc.Overview(context.Background(), student)
	require.NoError(t, err)
	assert.IsType(t, &response.StudentStatsResponse{}, overview.Stats)
	assert.Len(t, overview.Bookings, 1)
	assert.Empty(t, overview.Payments)
}

func TestDashboard_OverviewFailsFast(t *testing.T) {
	m := newRepoMocks(t)
	svc := NewDashboardService(m.repo, zap.NewNop())

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	m.user.On("Count", mock.Anything).Return(int64(1), nil).Maybe()
	m.room.On("CountAvailability", mock.Anything, mock.Anything).Return(int64(0), int64(0), nil).Maybe()
	m.booking.On("CountByStatus", mock.Anything, mock.Anything).Return(map[entity.BookingStatus]int64{}, nil).Maybe()
	m.payment.On("Totals", mock.Anything, mock.Anything).Return(int64(0), 0.0, nil).Maybe()
	m.booking.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	m.payment.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*entity.Payment{}, nil).Maybe()

	_, err := svc.Overview(context.Background(), admin)
	assert.ErrorIs(t, err, ErrPersistence)
}
