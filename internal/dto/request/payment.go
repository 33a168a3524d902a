package request

// PayRequest carries method and phone unchecked: the gateway reports
// missing or malformed values itself.
type PayRequest struct {
	BookingID      string `json:"booking_id" validate:"required,uuid"`
	Method         string `json:"payment_method"`
	Phone          string `json:"phone_number"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=128"`
}

type QuoteRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}
