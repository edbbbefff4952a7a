package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"

	// Legacy value still present in older records; treated the same as
	// checked-out when deciding whether a stay has ended.
	BookingCompleted BookingStatus = "completed"
)

type BookingChannel string

const (
	ChannelAirbnb   BookingChannel = "airbnb"
	ChannelDirect   BookingChannel = "direct"
	ChannelColiving BookingChannel = "coliving"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentNone   PaymentStatus = ""
)

type StayCategory string

const (
	StayShort  StayCategory = "short"
	StayMedium StayCategory = "medium"
	StayLong   StayCategory = "long"
)

// StayCategoryForNights buckets a stay by night count: short below a week,
// medium up to a month, long beyond.
func StayCategoryForNights(nights int) StayCategory {
	switch {
	case nights >= 31:
		return StayLong
	case nights >= 7:
		return StayMedium
	default:
		return StayShort
	}
}

// Booking dates are calendar days in "YYYY-MM-DD" form. CheckOut is
// exclusive, so a departing guest and an arriving one may share a day.
type Booking struct {
	ID                string         `json:"id"`
	GuestName         string         `json:"guest_name" validate:"required"`
	GuestEmail        string         `json:"guest_email,omitempty"`
	GuestPhone        string         `json:"guest_phone,omitempty"`
	GuestID           string         `json:"guest_id,omitempty"`
	RoomID            string         `json:"room_id" validate:"required"`
	CheckIn           string         `json:"check_in" validate:"required"`
	CheckOut          string         `json:"check_out" validate:"required"`
	NightlyPrice      float64        `json:"nightly_price"`
	TotalPrice        float64        `json:"total_price"`
	Status            BookingStatus  `json:"status"`
	StayCategory      StayCategory   `json:"stay_category"`
	IsLongTerm        bool           `json:"is_long_term"`
	WeeklyCleaningDay string         `json:"weekly_cleaning_day,omitempty"`
	EarlyCheckIn      bool           `json:"early_check_in"`
	Channel           BookingChannel `json:"channel"`
	PaymentStatus     PaymentStatus  `json:"payment_status,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Active reports whether the booking still occupies its room.
func (b Booking) Active() bool {
	return b.Status != BookingCancelled
}

// StayEnded reports whether the guest has already left.
func (b Booking) StayEnded() bool {
	return b.Status == BookingCheckedOut || b.Status == BookingCompleted
}
