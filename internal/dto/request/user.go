package request

type UserStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}
