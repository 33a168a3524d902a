package usecase

import (
	"context"
	"fmt"
	"math"

	"student-housing/internal/commission"
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// revenueMonths spreads net revenue into a monthly figure.
	revenueMonths = 6
	// activeUserRatio estimates active users from the user count until
	// login activity is tracked.
	activeUserRatio = 0.7
	overviewRecent  = 10
)

type DashboardService interface {
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*response.OwnerStatsResponse, error)
	AdminStats(ctx context.Context) (*response.AdminStatsResponse, error)
	StudentStats(ctx context.Context, studentID uuid.UUID) (*response.StudentStatsResponse, error)
	Stats(ctx context.Context, actor Actor) (any, error)
	Overview(ctx context.Context, actor Actor) (*response.OverviewResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*response.OwnerStatsResponse, error) {
	scope := repository.Scope{OwnerID: &ownerID}
	stats := &response.OwnerStatsResponse{}

	err := s.repo.Tx.WithinTx(ctx, repository.SnapshotTx, func(tx *repository.Repository) error {
		var err error
		stats.TotalRooms, stats.AvailableRooms, err = tx.Room.CountAvailability(ctx, &ownerID)
		if err != nil {
			return err
		}
		if stats.TotalBookings, err = tx.Booking.Count(ctx, scope); err != nil {
			return err
		}
		_, stats.GrossRevenue, err = tx.Payment.Totals(ctx, scope)
		return err
	})
	if err != nil {
		s.log.Error("Failed to compute owner stats", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, persistErr("owner stats", err)
	}

	stats.Commission = commission.Share(stats.GrossRevenue)
	stats.NetRevenue = commission.OwnerNet(stats.GrossRevenue)
	stats.MonthlyRevenue = math.Round(stats.NetRevenue / revenueMonths)
	stats.OccupancyRate = occupancyRate(stats.TotalRooms, stats.AvailableRooms)

	return stats, nil
}

func (s *dashboardService) AdminStats(ctx context.Context) (*response.AdminStatsResponse, error) {
	stats := &response.AdminStatsResponse{ActiveUsersEstimated: true}

	err := s.repo.Tx.WithinTx(ctx, repository.SnapshotTx, func(tx *repository.Repository) error {
		var err error
		if stats.TotalUsers, err = tx.User.Count(ctx); err != nil {
			return err
		}
		if stats.TotalRooms, _, err = tx.Room.CountAvailability(ctx, nil); err != nil {
			return err
		}
		byStatus, err := tx.Booking.CountByStatus(ctx, repository.Scope{})
		if err != nil {
			return err
		}
		for _, n := range byStatus {
			stats.TotalBookings += n
		}
		stats.PendingBookings = byStatus[entity.BookingStatusPending]

		_, stats.TotalRevenue, err = tx.Payment.Totals(ctx, repository.Scope{})
		return err
	})
	if err != nil {
		s.log.Error("Failed to compute admin stats", zap.Error(err))
		return nil, persistErr("admin stats", err)
	}

	stats.Commission = commission.Share(stats.TotalRevenue)
	stats.ActiveUsers = int64(math.Round(float64(stats.TotalUsers) * activeUserRatio))

	return stats, nil
}

func (s *dashboardService) StudentStats(ctx context.Context, studentID uuid.UUID) (*response.StudentStatsResponse, error) {
	scope := repository.Scope{StudentID: &studentID}
	stats := &response.StudentStatsResponse{}

	err := s.repo.Tx.WithinTx(ctx, repository.SnapshotTx, func(tx *repository.Repository) error {
		byStatus, err := tx.Booking.CountByStatus(ctx, scope)
		if err != nil {
			return err
		}
		stats.ConfirmedBookings = byStatus[entity.BookingStatusConfirmed]
		stats.PendingBookings = byStatus[entity.BookingStatusPending]

		stats.PaymentsCount, stats.TotalPaid, err = tx.Payment.Totals(ctx, scope)
		return err
	})
	if err != nil {
		s.log.Error("Failed to compute student stats", zap.Error(err), zap.String("student_id", studentID.String()))
		return nil, persistErr("student stats", err)
	}

	return stats, nil
}

// Stats returns the dashboard figures matching the actor's role.
func (s *dashboardService) Stats(ctx context.Context, actor Actor) (any, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return s.AdminStats(ctx)
	case entity.RoleOwner:
		return s.OwnerStats(ctx, actor.UserID)
	case entity.RoleStudent:
		return s.StudentStats(ctx, actor.UserID)
	}
	return nil, fmt.Errorf("role %q: %w", actor.Role, ErrForbidden)
}

// Overview loads stats, recent bookings and recent payments concurrently.
// Each section is consistent on its own; the three may be read at slightly
// different moments.
func (s *dashboardService) Overview(ctx context.Context, actor Actor) (*response.OverviewResponse, error) {
	scope := scopeFor(actor)
	overview := &response.OverviewResponse{
		Bookings: []response.BookingResponse{},
		Payments: []response.PaymentResponse{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Stats(gctx, actor)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})

	g.Go(func() error {
		bookings, err := s.repo.Booking.List(gctx, scope, overviewRecent, 0)
		if err != nil {
			return persistErr("recent bookings", err)
		}
		for _, b := range bookings {
			overview.Bookings = append(overview.Bookings, toBookingResponse(b))
		}
		return nil
	})

	g.Go(func() error {
		payments, err := s.repo.Payment.List(gctx, scope, overviewRecent, 0)
		if err != nil {
			return persistErr("recent payments", err)
		}
		for _, p := range payments {
			overview.Payments = append(overview.Payments, response.PaymentToResponse(p))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return overview, nil
}

func occupancyRate(total, available int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(total-available) / float64(total) * 100)
}
