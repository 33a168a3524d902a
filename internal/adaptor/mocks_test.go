package adaptor

import (
	"context"

	"student-housing/internal/data/entity"
	"student-housing/internal/dto/request"
	"student-housing/internal/dto/response"
	"student-housing/internal/gateway"
	"student-housing/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, actor usecase.Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.BookingResponse)
	return res, args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, actor usecase.Actor, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, bookingID)
	res, _ := args.Get(0).(*response.BookingResponse)
	return res, args.Error(1)
}

func (m *mockBookingService) ListBookings(ctx context.Context, actor usecase.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return res, args.Error(1)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, actor usecase.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, bookingID, req)
	res, _ := args.Get(0).(*response.BookingResponse)
	return res, args.Error(1)
}

func (m *mockBookingService) BulkUpdateStatus(ctx context.Context, actor usecase.Actor, req *request.BulkBookingStatusRequest) (*response.BulkResultResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.BulkResultResponse)
	return res, args.Error(1)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, actor usecase.Actor, bookingID string) error {
	return m.Called(ctx, actor, bookingID).Error(0)
}

func (m *mockBookingService) GetInvoice(ctx context.Context, actor usecase.Actor, bookingID string) (*response.InvoiceResponse, error) {
	args := m.Called(ctx, actor, bookingID)
	res, _ := args.Get(0).(*response.InvoiceResponse)
	return res, args.Error(1)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) Pay(ctx context.Context, actor usecase.Actor, req *request.PayRequest) (*response.PaymentResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.PaymentResponse)
	return res, args.Error(1)
}

func (m *mockPaymentService) Quote(ctx context.Context, actor usecase.Actor, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.QuoteResponse)
	return res, args.Error(1)
}

func (m *mockPaymentService) GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]response.PaymentMethodResponse)
	return res
}

type mockSettlementService struct{ mock.Mock }

func (m *mockSettlementService) CheckPayable(booking *entity.Booking) error {
	return m.Called(booking).Error(0)
}

func (m *mockSettlementService) RecordPayment(ctx context.Context, result *gateway.Result, attemptID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, result, attemptID)
	res, _ := args.Get(0).(*entity.Payment)
	return res, args.Error(1)
}

func (m *mockSettlementService) GetPayments(ctx context.Context, actor usecase.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	args := m.Called(ctx, actor, req)
	res, _ := args.Get(0).(*response.PaginatedResponse[response.PaymentResponse])
	return res, args.Error(1)
}
