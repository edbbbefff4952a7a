package booking

// CreateBookingRequest is the dashboard's booking form payload. Dates are
// "YYYY-MM-DD"; check_out is exclusive.
type CreateBookingRequest struct {
	GuestName         string  `json:"guest_name" binding:"required"`
	GuestEmail        string  `json:"guest_email"`
	GuestPhone        string  `json:"guest_phone"`
	RoomID            string  `json:"room_id" binding:"required"`
	CheckIn           string  `json:"check_in" binding:"required"`
	CheckOut          string  `json:"check_out" binding:"required"`
	NightlyPrice      float64 `json:"nightly_price"`
	TotalPrice        float64 `json:"total_price"`
	StayCategory      string  `json:"stay_category"`
	WeeklyCleaningDay string  `json:"weekly_cleaning_day"`
	EarlyCheckIn      bool    `json:"early_check_in"`
	Channel           string  `json:"channel" binding:"required"`
	PaymentStatus     string  `json:"payment_status"`
	Notes             string  `json:"notes"`
	AllowNameMatch    bool    `json:"allow_name_match"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
