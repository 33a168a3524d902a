package usecase

import (
	"student-housing/internal/data/repository"
	"student-housing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Room       RoomService
	District   DistrictService
	Booking    BookingService
	Payment    PaymentService
	Settlement SettlementService
	Dashboard  DashboardService
}

func NewService(repo *repository.Repository, gw PaymentGateway, events EventPublisher, config *utils.Config, log *zap.Logger) *Service {
	settlement := NewSettlementService(repo, events, config.Settlement.EnforceSingle, log)

	return &Service{
		Auth:       NewAuthService(repo, config, log),
		User:       NewUserService(repo.User, log),
		Room:       NewRoomService(repo.Room, log),
		District:   NewDistrictService(repo.District, log),
		Booking:    NewBookingService(repo, events, log),
		Payment:    NewPaymentService(repo, gw, settlement, events, log),
		Settlement: settlement,
		Dashboard:  NewDashboardService(repo, log),
	}
}
