package response

import (
	"time"

	"student-housing/internal/data/entity"
)

type DistrictResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func DistrictToResponse(d *entity.District) DistrictResponse {
	return DistrictResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}
