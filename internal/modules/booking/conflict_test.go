package booking

import (
	"testing"

	"coliving/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConflict_InvalidDateOrder(t *testing.T) {
	res := CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-03-05", CheckOut: "2024-03-05"}, nil, "")
	assert.True(t, res.Conflict)
	assert.Nil(t, res.ConflictingBooking)

	res = CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-03-06", CheckOut: "2024-03-05"}, nil, "")
	assert.True(t, res.Conflict)

	res = CheckConflict(domain.Booking{RoomID: "r1", CheckOut: "2024-03-05"}, nil, "")
	assert.True(t, res.Conflict)
}

func TestCheckConflict_Overlap(t *testing.T) {
	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "G1", CheckIn: "2024-03-01", CheckOut: "2024-03-05", Status: domain.BookingConfirmed},
	}

	candidate := domain.Booking{RoomID: "r1", CheckIn: "2024-03-04", CheckOut: "2024-03-06"}
	res := CheckConflict(candidate, existing, "")
	require.True(t, res.Conflict)
	require.NotNil(t, res.ConflictingBooking)
	assert.Equal(t, "b1", res.ConflictingBooking.ID)
	assert.Contains(t, res.Reason, "G1")
	assert.Contains(t, res.Reason, "2024-03-01")
	assert.Contains(t, res.Reason, "2024-03-05")
}

func TestCheckConflict_BackToBackTurnover(t *testing.T) {
	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "G1", CheckIn: "2024-03-01", CheckOut: "2024-03-05", Status: domain.BookingConfirmed},
	}

	// Checkout day equals the new check-in day: no conflict.
	res := CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-03-05", CheckOut: "2024-03-08"}, existing, "")
	assert.False(t, res.Conflict)

	// Mirror case: new checkout equals the existing check-in.
	res = CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-02-25", CheckOut: "2024-03-01"}, existing, "")
	assert.False(t, res.Conflict)
}

func TestCheckConflict_FirstMatchInEncounterOrder(t *testing.T) {
	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "First", CheckIn: "2024-03-03", CheckOut: "2024-03-06", Status: domain.BookingConfirmed},
		{ID: "b2", RoomID: "r1", GuestName: "Second", CheckIn: "2024-03-05", CheckOut: "2024-03-09", Status: domain.BookingConfirmed},
	}

	res := CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-03-04", CheckOut: "2024-03-08"}, existing, "")
	require.True(t, res.Conflict)
	assert.Equal(t, "b1", res.ConflictingBooking.ID)
}

func TestCheckConflict_IgnoresCancelledOtherRoomsAndExcluded(t *testing.T) {
	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "G1", CheckIn: "2024-03-01", CheckOut: "2024-03-10", Status: domain.BookingCancelled},
		{ID: "b2", RoomID: "r2", GuestName: "G2", CheckIn: "2024-03-01", CheckOut: "2024-03-10", Status: domain.BookingConfirmed},
		{ID: "b3", RoomID: "r1", GuestName: "G3", CheckIn: "2024-03-01", CheckOut: "2024-03-10", Status: domain.BookingConfirmed},
	}

	res := CheckConflict(domain.Booking{RoomID: "r1", CheckIn: "2024-03-02", CheckOut: "2024-03-04"}, existing, "b3")
	assert.False(t, res.Conflict)
}
