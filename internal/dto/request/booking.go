package request

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID    string  `json:"room_id" validate:"required,uuid"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type BulkBookingStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}
