package domain

import "time"

type GuestStatus string

const (
	GuestActive   GuestStatus = "active"
	GuestArchived GuestStatus = "archived"
)

// Guest is the canonical identity record one person maps to across
// bookings. Normalized fields are the matching keys; raw fields keep what
// the guest actually typed.
type Guest struct {
	ID              string      `json:"id"`
	FullName        string      `json:"full_name"`
	NormalizedName  string      `json:"normalized_name,omitempty"`
	Email           string      `json:"email,omitempty"`
	NormalizedEmail string      `json:"normalized_email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	NormalizedPhone string      `json:"normalized_phone,omitempty"`
	StayCount       int         `json:"stay_count"`
	LifetimeNights  int         `json:"lifetime_nights"`
	LastStayEnd     string      `json:"last_stay_end,omitempty"`
	SourceChannels  []string    `json:"source_channels,omitempty"`
	LastBookingID   string      `json:"last_booking_id,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Status          GuestStatus `json:"status"`

	// Booking ids already counted into StayCount/LifetimeNights. Guards
	// the stats increment against retries and duplicate calls.
	CountedBookingIDs []string `json:"counted_booking_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasChannel reports whether the guest ever booked through ch.
func (g Guest) HasChannel(ch string) bool {
	for _, c := range g.SourceChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// HasCountedBooking reports whether the booking's stay was already added
// to the lifetime stats.
func (g Guest) HasCountedBooking(bookingID string) bool {
	for _, id := range g.CountedBookingIDs {
		if id == bookingID {
			return true
		}
	}
	return false
}
