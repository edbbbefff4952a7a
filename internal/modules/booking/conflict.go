package booking

import (
	"fmt"

	"coliving/internal/domain"
)

// ConflictResult is the outcome of checking one candidate booking against
// the existing set. When the dates themselves are invalid, Conflict is true
// and ConflictingBooking is nil.
type ConflictResult struct {
	Conflict           bool            `json:"conflict"`
	Reason             string          `json:"reason,omitempty"`
	ConflictingBooking *domain.Booking `json:"conflicting_booking,omitempty"`
}

// CheckConflict decides whether the candidate may occupy its room. Dates
// are half-open [checkIn, checkOut), so one guest's checkout day can be
// another's check-in day without a conflict. Cancelled bookings, other
// rooms, and the booking with excludeID (the candidate itself, during an
// edit) are ignored. The first overlapping booking in encounter order is
// the one reported.
func CheckConflict(candidate domain.Booking, existing []domain.Booking, excludeID string) ConflictResult {
	if candidate.CheckIn == "" || candidate.CheckOut == "" || candidate.CheckIn >= candidate.CheckOut {
		return ConflictResult{
			Conflict: true,
			Reason:   "check-out date must be after check-in date",
		}
	}

	for i := range existing {
		e := existing[i]
		if e.RoomID != candidate.RoomID || !e.Active() {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if candidate.CheckIn < e.CheckOut && candidate.CheckOut > e.CheckIn {
			return ConflictResult{
				Conflict:           true,
				Reason:             fmt.Sprintf("room is occupied by %s from %s to %s", e.GuestName, e.CheckIn, e.CheckOut),
				ConflictingBooking: &e,
			}
		}
	}

	return ConflictResult{}
}
