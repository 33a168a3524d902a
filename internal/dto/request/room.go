package request

type CreateRoomRequest struct {
	Title     string  `json:"title" validate:"required,min=3,max=150"`
	District  string  `json:"district" validate:"required,max=100"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Available *bool   `json:"available,omitempty"`
}

type UpdateRoomRequest struct {
	Title     *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	District  *string  `json:"district,omitempty" validate:"omitempty,max=100"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Available *bool    `json:"available,omitempty"`
}

// RoomListRequest is bound from query parameters.
type RoomListRequest struct {
	PaginatedRequest
	District  string
	Available *bool
	MinPrice  *float64
	MaxPrice  *float64
	Mine      bool
}

type BulkRoomAvailabilityRequest struct {
	IDs       []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Available *bool    `json:"available" validate:"required"`
}
