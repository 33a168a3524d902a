package response

import (
	"time"

	"student-housing/internal/data/entity"
)

type BookingResponse struct {
	ID            string                      `json:"id"`
	RoomID        string                      `json:"room_id"`
	StudentID     string                      `json:"student_id"`
	StartDate     string                      `json:"start_date"`
	EndDate       string                      `json:"end_date"`
	Months        int                         `json:"months"`
	TotalPrice    float64                     `json:"total_price"`
	Status        entity.BookingStatus        `json:"status"`
	PaymentStatus entity.BookingPaymentStatus `json:"payment_status"`
	Notes         *string                     `json:"notes,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// InvoiceResponse is the data an external renderer turns into a document.
type InvoiceResponse struct {
	Booking BookingResponse  `json:"booking"`
	Payment *PaymentResponse `json:"payment"`
}

// BulkItemResult reports the outcome of one id in a bulk request.
type BulkItemResult struct {
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

type BulkResultResponse struct {
	Applied int              `json:"applied"`
	Items   []BulkItemResult `json:"items"`
}

// BulkCountResponse is returned by single-statement bulk operations.
type BulkCountResponse struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}

func BookingToResponse(booking *entity.Booking, months int) BookingResponse {
	return BookingResponse{
		ID:            booking.ID.String(),
		RoomID:        booking.RoomID.String(),
		StudentID:     booking.StudentID.String(),
		StartDate:     booking.StartDate.Format("2006-01-02"),
		EndDate:       booking.EndDate.Format("2006-01-02"),
		Months:        months,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}
