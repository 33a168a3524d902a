package response

import (
	"time"

	"student-housing/internal/data/entity"
)

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        float64              `json:"amount"`
	Commission    float64              `json:"commission"`
	Method        entity.PaymentMethod `json:"payment_method"`
	Phone         string               `json:"phone_number"`
	TransactionID string               `json:"transaction_id"`
	Status        entity.PaymentStatus `json:"status"`
	PaymentDate   time.Time            `json:"payment_date"`
}

// QuoteResponse shows the tenant what will be charged before paying.
type QuoteResponse struct {
	BookingID  string  `json:"booking_id"`
	Total      float64 `json:"total"`
	Commission float64 `json:"commission"`
	Amount     float64 `json:"amount"`
}

type PaymentMethodResponse struct {
	Code        entity.PaymentMethod `json:"code"`
	Name        string               `json:"name"`
	PhoneFormat string               `json:"phone_format"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		BookingID:     payment.BookingID.String(),
		Amount:        payment.Amount,
		Commission:    payment.Commission,
		Method:        payment.Method,
		Phone:         payment.Phone,
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		PaymentDate:   payment.PaymentDate,
	}
}
