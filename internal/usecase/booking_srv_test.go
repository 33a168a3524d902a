package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	*repoMocks
	events  *mockPublisher
	svc     BookingService
	student Actor
	owner   Actor
	admin   Actor
	room    *entity.Room
}

func newBookingFixture(t *testing.T) *bookingFixture {
	m := newRepoMocks(t)
	events := &mockPublisher{}
	events.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	owner := Actor{UserID: uuid.New(), Role: entity.RoleOwner}
	return &bookingFixture{
		repoMocks: m,
		events:    events,
		svc:       NewBookingService(m.repo, events, zap.NewNop()),
		student:   Actor{UserID: uuid.New(), Role: entity.RoleStudent},
		owner:     owner,
		admin:     Actor{UserID: uuid.New(), Role: entity.RoleAdmin},
		room: &entity.Room{
			Base:      entity.Base{ID: uuid.New()},
			OwnerID:   owner.UserID,
			Title:     "Studio Bastos",
			District:  "Bastos",
			Price:     45000,
			Available: true,
		},
	}
}

func (f *bookingFixture) booking(status entity.BookingStatus, payment entity.BookingPaymentStatus) *entity.Booking {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		RoomID:        f.room.ID,
		StudentID:     f.student.UserID,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 89),
		TotalPrice:    135000,
		Status:        status,
		PaymentStatus: payment,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.repoMocks.booking.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.StudentID == f.student.UserID &&
			b.TotalPrice == 135000 &&
			b.Status == entity.BookingStatusPending &&
			b.PaymentStatus == entity.BookingPaymentPending
	})).Return(nil)

	resp, err := f.svc.CreateBooking(context.Background(), f.student, &request.CreateBookingRequest{
		RoomID:    f.room.ID.String(),
		StartDate: "2025-01-01",
		EndDate:   "2025-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Months)
	assert.Equal(t, 135000.0, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, entity.BookingPaymentPending, resp.PaymentStatus)
	f.events.AssertCalled(t, "PublishJSON", mock.Anything, EventBookingCreated, mock.Anything)
}

func TestBookingService_CreateBookingInvalidDatesCreatesNothing(t *testing.T) {
	f := newBookingFixture(t)

	for _, dates := range [][2]string{
		{"2025-03-01", "2025-03-01"},
		{"2025-03-01", "2025-02-01"},
		{"2025-13-01", "2025-14-01"},
	} {
		_, err := f.svc.CreateBooking(context.Background(), f.student, &request.CreateBookingRequest{
			RoomID:    f.room.ID.String(),
			StartDate: dates[0],
			EndDate:   dates[1],
		})
		assert.ErrorIs(t, err, ErrValidation, dates)
	}

	f.repoMocks.booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBookingRoomChecks(t *testing.T) {
	f := newBookingFixture(t)
	missing := uuid.New()
	f.room.Available = false

	f.repoMocks.room.On("FindByID", mock.Anything, missing).Return(nil, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)

	req := &request.CreateBookingRequest{StartDate: "2025-01-01", EndDate: "2025-02-01"}

	req.RoomID = missing.String()
	_, err := f.svc.CreateBooking(context.Background(), f.student, req)
	assert.ErrorIs(t, err, ErrValidation)

	req.RoomID = f.room.ID.String()
	_, err = f.svc.CreateBooking(context.Background(), f.student, req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["room_id"], "not available")

	_, err = f.svc.CreateBooking(context.Background(), f.owner, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(f *bookingFixture) Actor
		from    entity.BookingStatus
		to      entity.BookingStatus
		wantErr error
	}{
		{"owner confirms", func(f *bookingFixture) Actor { return f.owner }, entity.BookingStatusPending, entity.BookingStatusConfirmed, nil},
		{"student cancels pending", func(f *bookingFixture) Actor { return f.student }, entity.BookingStatusPending, entity.BookingStatusCancelled, nil},
		{"student cannot confirm", func(f *bookingFixture) Actor { return f.student }, entity.BookingStatusPending, entity.BookingStatusConfirmed, ErrInvalidTransition},
		{"admin cannot complete", func(f *bookingFixture) Actor { return f.admin }, entity.BookingStatusConfirmed, entity.BookingStatusCompleted, ErrInvalidTransition},
		{"other owner forbidden", func(*bookingFixture) Actor { return Actor{UserID: uuid.New(), Role: entity.RoleOwner} }, entity.BookingStatusPending, entity.BookingStatusCancelled, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			b := f.booking(tt.from, entity.BookingPaymentPending)

			f.repoMocks.booking.On("FindManyForUpdate", mock.Anything, []uuid.UUID{b.ID}).Return([]*entity.Booking{b}, nil)
			f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
			if tt.wantErr == nil {
				f.repoMocks.booking.On("UpdateStatus", mock.Anything, b.ID, tt.to).Return(nil)
			}

			resp, err := f.svc.UpdateStatus(context.Background(), tt.actor(f), b.ID.String(),
				&request.UpdateBookingStatusRequest{Status: string(tt.to)})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.repoMocks.booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				assert.Equal(t, 1, f.tx.rollbacks)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, 1, f.tx.commits)
		})
	}
}

func TestBookingService_CancelKeepsPaymentStatus(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid)

	f.repoMocks.booking.On("FindManyForUpdate", mock.Anything, []uuid.UUID{b.ID}).Return([]*entity.Booking{b}, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.repoMocks.booking.On("UpdateStatus", mock.Anything, b.ID, entity.BookingStatusCancelled).Return(nil)

	resp, err := f.svc.UpdateStatus(context.Background(), f.owner, b.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.BookingPaymentPaid, resp.PaymentStatus)
	f.repoMocks.booking.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_BulkUpdateStatusAllOrNothing(t *testing.T) {
	f := newBookingFixture(t)
	ok := f.booking(entity.BookingStatusPending, entity.BookingPaymentPending)
	bad := f.booking(entity.BookingStatusCancelled, entity.BookingPaymentPending)
	missing := uuid.New()
	ids := []uuid.UUID{ok.ID, bad.ID, missing}

	f.repoMocks.booking.On("FindManyForUpdate", mock.Anything, ids).Return([]*entity.Booking{ok, bad}, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil).Once()

	result, err := f.svc.BulkUpdateStatus(context.Background(), f.owner, &request.BulkBookingStatusRequest{
		IDs:    []string{ok.ID.String(), bad.ID.String(), missing.String()},
		Status: "confirmed",
	})
	require.ErrorIs(t, err, ErrBulkRejected)
	require.NotNil(t, result)
	require.Len(t, result.Items, 3)
	assert.True(t, result.Items[0].OK)
	assert.False(t, result.Items[1].OK)
	assert.Contains(t, result.Items[1].Reason, "invalid status transition")
	assert.False(t, result.Items[2].OK)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, f.tx.rollbacks)
	f.repoMocks.booking.AssertNotCalled(t, "UpdateStatusMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_BulkUpdateStatusApplied(t *testing.T) {
	f := newBookingFixture(t)
	a := f.booking(entity.BookingStatusPending, entity.BookingPaymentPending)
	b := f.booking(entity.BookingStatusPending, entity.BookingPaymentPending)
	ids := []uuid.UUID{a.ID, b.ID}

	f.repoMocks.booking.On("FindManyForUpdate", mock.Anything, ids).Return([]*entity.Booking{b, a}, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil).Once()
	f.repoMocks.booking.On("UpdateStatusMany", mock.Anything, ids, entity.BookingStatusConfirmed).Return(int64(2), nil)

	result, err := f.svc.BulkUpdateStatus(context.Background(), f.admin, &request.BulkBookingStatusRequest{
		IDs:    []string{a.ID.String(), b.ID.String(), a.ID.String()},
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, f.tx.commits)

	for _, id := range ids {
		f.events.AssertCalled(t, "PublishJSON", mock.Anything, EventBookingStatusChanged, mock.MatchedBy(func(e Event) bool {
			return e.Data["booking_id"] == id &&
				e.Data["student_id"] == f.student.UserID &&
				e.Data["from"] == entity.BookingStatusPending &&
				e.Data["to"] == entity.BookingStatusConfirmed
		}))
	}
}

func TestBookingService_DeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	confirmed := f.booking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid)
	pending := f.booking(entity.BookingStatusPending, entity.BookingPaymentPending)

	f.repoMocks.booking.On("FindByID", mock.Anything, confirmed.ID).Return(confirmed, nil)
	f.repoMocks.booking.On("FindByID", mock.Anything, pending.ID).Return(pending, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.repoMocks.booking.On("Delete", mock.Anything, pending.ID).Return(nil)
	f.repoMocks.booking.On("Delete", mock.Anything, confirmed.ID).Return(nil)

	err := f.svc.DeleteBooking(context.Background(), f.student, confirmed.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	stranger := Actor{UserID: uuid.New(), Role: entity.RoleStudent}
	err = f.svc.DeleteBooking(context.Background(), stranger, pending.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.DeleteBooking(context.Background(), f.student, pending.ID.String()))
	require.NoError(t, f.svc.DeleteBooking(context.Background(), f.owner, confirmed.ID.String()))
	f.events.AssertCalled(t, "PublishJSON", mock.Anything, EventBookingDeleted, mock.Anything)
}

func TestBookingService_ListBookingsScopedByRole(t *testing.T) {
	f := newBookingFixture(t)
	studentID := f.student.UserID
	ownerID := f.owner.UserID

	f.repoMocks.booking.On("List", mock.Anything, repository.Scope{StudentID: &studentID}, 10, 0).Return([]*entity.Booking{}, nil)
	f.repoMocks.booking.On("Count", mock.Anything, repository.Scope{StudentID: &studentID}).Return(int64(0), nil)
	f.repoMocks.booking.On("List", mock.Anything, repository.Scope{OwnerID: &ownerID}, 10, 0).Return([]*entity.Booking{}, nil)
	f.repoMocks.booking.On("Count", mock.Anything, repository.Scope{OwnerID: &ownerID}).Return(int64(0), nil)
	f.repoMocks.booking.On("List", mock.Anything, repository.Scope{}, 10, 0).Return([]*entity.Booking{f.booking(entity.BookingStatusPending, entity.BookingPaymentPending)}, nil)
	f.repoMocks.booking.On("Count", mock.Anything, repository.Scope{}).Return(int64(1), nil)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}
	for _, actor := range []Actor{f.student, f.owner} {
		resp, err := f.svc.ListBookings(context.Background(), actor, page)
		require.NoError(t, err)
		assert.Empty(t, resp.Data)
	}

	resp, err := f.svc.ListBookings(context.Background(), f.admin, page)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestBookingService_GetInvoice(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid)
	payment := &entity.Payment{Base: entity.Base{ID: uuid.New()}, BookingID: b.ID, Amount: 141750, Commission: 6750}

	f.repoMocks.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	f.repoMocks.room.On("FindByID", mock.Anything, f.room.ID).Return(f.room, nil)
	f.repoMocks.payment.On("FindByBookingID", mock.Anything, b.ID).Return(payment, nil)

	invoice, err := f.svc.GetInvoice(context.Background(), f.student, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), invoice.Booking.ID)
	require.NotNil(t, invoice.Payment)
	assert.Equal(t, 141750.0, invoice.Payment.Amount)
}

func TestBookingService_GetBookingErrors(t *testing.T) {
	f := newBookingFixture(t)
	missing := uuid.New()
	f.repoMocks.booking.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := f.svc.GetBooking(context.Background(), f.admin, missing.String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.GetBooking(context.Background(), f.admin, "not-a-uuid")
	assert.ErrorIs(t, err, ErrValidation)

	broken := uuid.New()
	f.repoMocks.booking.On("FindByID", mock.Anything, broken).Return(nil, errors.New("connection reset"))
	_, err = f.svc.GetBooking(context.Background(), f.admin, broken.String())
	assert.ErrorIs(t, err, ErrPersistence)
}
