package response

import (
	"time"

	"student-housing/internal/data/entity"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	District  string    `json:"district"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		OwnerID:   room.OwnerID.String(),
		Title:     room.Title,
		District:  room.District,
		Price:     room.Price,
		Available: room.Available,
		CreatedAt: room.CreatedAt,
	}
}
