package response

type OwnerStatsResponse struct {
	TotalRooms     int64   `json:"total_rooms"`
	AvailableRooms int64   `json:"available_rooms"`
	TotalBookings  int64   `json:"total_bookings"`
	GrossRevenue   float64 `json:"gross_revenue"`
	Commission     float64 `json:"commission"`
	NetRevenue     float64 `json:"net_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

type AdminStatsResponse struct {
	TotalUsers      int64   `json:"total_users"`
	TotalRooms      int64   `json:"total_rooms"`
	TotalBookings   int64   `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	Commission      float64 `json:"commission"`
	PendingBookings int64   `json:"pending_bookings"`
	// ActiveUsers is an estimate, not a count of recent logins.
	ActiveUsers          int64 `json:"active_users"`
	ActiveUsersEstimated bool  `json:"active_users_estimated"`
}

type StudentStatsResponse struct {
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	PaymentsCount     int64   `json:"payments_count"`
	TotalPaid         float64 `json:"total_paid"`
}

// OverviewResponse sections are each internally consistent but may be read
// at slightly different moments.
type OverviewResponse struct {
	Stats    any               `json:"stats"`
	Bookings []BookingResponse `json:"bookings"`
	Payments []PaymentResponse `json:"payments"`
}
