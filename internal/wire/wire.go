package wire

import (
	"net/http"
	"time"

	"student-housing/internal/adaptor"
	"student-housing/internal/data/repository"
	"student-housing/internal/gateway"
	"student-housing/internal/usecase"
	"student-housing/pkg/database"
	"student-housing/pkg/middleware"
	"student-housing/pkg/mq"
	"student-housing/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type eventBus interface {
	usecase.EventPublisher
	Close() error
}

// App holds the router and the resources Teardown releases.
type App struct {
	Router *chi.Mux

	db     database.PgxIface
	events eventBus
	log    *zap.Logger
}

// Init connects the database and the broker and builds the router.
func Init(config *utils.Config, logger *zap.Logger) (*App, error) {
	db, err := database.InitDB(config.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected successfully")

	events, err := newEventBus(config.Broker, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	repo := repository.NewRepository(db, logger)
	gw := gateway.NewSimulator(
		config.Gateway.Delay,
		gateway.NewRandomResolver(config.Gateway.SuccessRate, uint64(time.Now().UnixNano())),
		logger,
	)

	return &App{
		Router: Wiring(repo, gw, events, config, logger),
		db:     db,
		events: events,
		log:    logger,
	}, nil
}

// Teardown releases the broker connection and the pool.
func (a *App) Teardown() {
	if err := a.events.Close(); err != nil {
		a.log.Warn("Failed to close event publisher", zap.Error(err))
	}
	a.db.Close()
}

func newEventBus(config utils.BrokerConfig, logger *zap.Logger) (eventBus, error) {
	if config.URL == "" {
		logger.Info("AMQP_URL not set, domain events are dropped")
		return mq.Noop{}, nil
	}
	pub, err := mq.NewPublisher(config.URL, config.Exchange)
	if err != nil {
		return nil, err
	}
	logger.Info("Event publisher connected", zap.String("exchange", config.Exchange))
	return pub, nil
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(
	repo *repository.Repository,
	gw usecase.PaymentGateway,
	events usecase.EventPublisher,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	service := usecase.NewService(repo, gw, events, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return setupRouter(handler, repo, logger)
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireRoom(r, handler.Room, repo, logger)
	wireDistrict(r, handler.District, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)
	wireDashboard(r, handler.Dashboard, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
