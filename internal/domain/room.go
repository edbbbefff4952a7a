package domain

import "time"

type Property struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rooms []Room `json:"rooms,omitempty"`
}

// Room is catalog reference data, loaded once at startup and injected into
// the services that need it. Never derived from bookings.
type Room struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	PropertyID   string `json:"property_id"`
	PropertyName string `json:"property_name"`
}

type HousekeepingStatus string

const (
	RoomClean         HousekeepingStatus = "clean"
	RoomDirty         HousekeepingStatus = "dirty"
	RoomInProgress    HousekeepingStatus = "in_progress"
	RoomCheckoutDirty HousekeepingStatus = "checkout_dirty"
)

// UnassignedStaff is the sentinel for a task nobody has picked up yet.
const UnassignedStaff = "Unassigned"

// DefaultPriority is the baseline task priority (lower = more urgent).
const DefaultPriority = 3

// RoomStatus is the manually maintained housekeeping state for one room.
type RoomStatus struct {
	RoomID     string             `json:"room_id"`
	Status     HousekeepingStatus `json:"status"`
	AssignedTo string             `json:"assigned_to"`
	Priority   int                `json:"priority"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CleanBaseline is the state a room returns to when marked clean.
func CleanBaseline(roomID string) RoomStatus {
	return RoomStatus{
		RoomID:     roomID,
		Status:     RoomClean,
		AssignedTo: UnassignedStaff,
		Priority:   DefaultPriority,
	}
}
