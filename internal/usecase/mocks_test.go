package usecase

import (
	"context"
	"testing"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/gateway"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	u, _ := args.Get(0).([]*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockUserRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type mockDistrictRepo struct{ mock.Mock }

func (m *mockDistrictRepo) List(ctx context.Context) ([]*entity.District, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]*entity.District)
	return d, args.Error(1)
}

func (m *mockDistrictRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.District, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.District)
	return d, args.Error(1)
}

func (m *mockDistrictRepo) Create(ctx context.Context, district *entity.District) error {
	return m.Called(ctx, district).Error(0)
}

func (m *mockDistrictRepo) Update(ctx context.Context, district *entity.District) error {
	return m.Called(ctx, district).Error(0)
}

func (m *mockDistrictRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockRoomRepo struct{ mock.Mock }

func (m *mockRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Room)
	return r, args.Error(1)
}

func (m *mockRoomRepo) List(ctx context.Context, filter repository.RoomFilter, limit, offset int) ([]*entity.Room, error) {
	args := m.Called(ctx, filter, limit, offset)
	r, _ := args.Get(0).([]*entity.Room)
	return r, args.Error(1)
}

func (m *mockRoomRepo) Count(ctx context.Context, filter repository.RoomFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomRepo) CountAvailability(ctx context.Context, ownerID *uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockRoomRepo) SetAvailability(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID, available bool) (int64, error) {
	args := m.Called(ctx, ids, ownerID, available)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRoomRepo) DeleteMany(ctx context.Context, ids []uuid.UUID, ownerID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, ids)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, scope, limit, offset)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Count(ctx context.Context, scope repository.Scope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context, scope repository.Scope) (map[entity.BookingStatus]int64, error) {
	args := m.Called(ctx, scope)
	c, _ := args.Get(0).(map[entity.BookingStatus]int64)
	return c, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) UpdateStatusMany(ctx context.Context, ids []uuid.UUID, status entity.BookingStatus) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.Payment, error) {
	args := m.Called(ctx, scope, limit, offset)
	p, _ := args.Get(0).([]*entity.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentRepo) Count(ctx context.Context, scope repository.Scope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) CountCompletedByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) Totals(ctx context.Context, scope repository.Scope) (int64, float64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

type mockAttemptRepo struct{ mock.Mock }

func (m *mockAttemptRepo) Create(ctx context.Context, attempt *entity.PaymentAttempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *mockAttemptRepo) FindByKey(ctx context.Context, key string) (*entity.PaymentAttempt, error) {
	args := m.Called(ctx, key)
	a, _ := args.Get(0).(*entity.PaymentAttempt)
	return a, args.Error(1)
}

func (m *mockAttemptRepo) MarkSucceeded(ctx context.Context, id, paymentID uuid.UUID) error {
	return m.Called(ctx, id, paymentID).Error(0)
}

func (m *mockAttemptRepo) Close(ctx context.Context, id uuid.UUID, status entity.AttemptStatus, reason string) error {
	return m.Called(ctx, id, status, reason).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Initiate(bookingID uuid.UUID, method, phone string, total float64) (*gateway.Charge, error) {
	args := m.Called(bookingID, method, phone, total)
	c, _ := args.Get(0).(*gateway.Charge)
	return c, args.Error(1)
}

func (m *mockGateway) Process(ctx context.Context, charge *gateway.Charge) (*gateway.Result, error) {
	args := m.Called(ctx, charge)
	r, _ := args.Get(0).(*gateway.Result)
	return r, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

// fakeTx runs fn against the same mocked repositories and records how the
// transaction ended.
type fakeTx struct {
	repo      *repository.Repository
	beginErr  error
	opts      []pgx.TxOptions
	commits   int
	rollbacks int
}

func (f *fakeTx) WithinTx(_ context.Context, opts pgx.TxOptions, fn func(tx *repository.Repository) error) error {
	f.opts = append(f.opts, opts)
	if f.beginErr != nil {
		return f.beginErr
	}
	if err := fn(f.repo); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type repoMocks struct {
	user     *mockUserRepo
	session  *mockSessionRepo
	room     *mockRoomRepo
	district *mockDistrictRepo
	booking  *mockBookingRepo
	payment  *mockPaymentRepo
	attempt  *mockAttemptRepo
	tx       *fakeTx
	repo     *repository.Repository
}

func newRepoMocks(t *testing.T) *repoMocks {
	t.Helper()
	m := &repoMocks{
		user:     &mockUserRepo{},
		session:  &mockSessionRepo{},
		room:     &mockRoomRepo{},
		district: &mockDistrictRepo{},
		booking:  &mockBookingRepo{},
		payment:  &mockPaymentRepo{},
		attempt:  &mockAttemptRepo{},
	}
	m.repo = &repository.Repository{
		User:     m.user,
		Session:  m.session,
		Room:     m.room,
		District: m.district,
		Booking:  m.booking,
		Payment:  m.payment,
		Attempt:  m.attempt,
	}
	m.tx = &fakeTx{repo: m.repo}
	m.repo.Tx = m.tx

	t.Cleanup(func() {
		m.user.AssertExpectations(t)
		m.session.AssertExpectations(t)
		m.room.AssertExpectations(t)
		m.district.AssertExpectations(t)
		m.booking.AssertExpectations(t)
		m.payment.AssertExpectations(t)
		m.attempt.AssertExpectations(t)
	})
	return m
}
