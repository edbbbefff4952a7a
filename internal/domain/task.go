package domain

// RoomTask is one room's derived housekeeping work for a given date.
// Flags are kept separate from the numeric priority: display partitioning
// reads the flags only, so a manual priority override never moves a task
// between display buckets.
type RoomTask struct {
	RoomID          string             `json:"room_id"`
	RoomName        string             `json:"room_name"`
	PropertyID      string             `json:"property_id"`
	PropertyName    string             `json:"property_name"`
	Date            string             `json:"date"`
	Status          HousekeepingStatus `json:"status"`
	Priority        int                `json:"priority"`
	AssignedTo      string             `json:"assigned_to"`
	IsCheckout      bool               `json:"is_checkout"`
	IsWeeklyClean   bool               `json:"is_weekly_clean"`
	IsArrival       bool               `json:"is_arrival"`
	HasEarlyArrival bool               `json:"has_early_arrival"`
	GuestName       string             `json:"guest_name,omitempty"`
}

// TypeLabel names the task for plan messages.
func (t RoomTask) TypeLabel() string {
	switch {
	case t.IsCheckout:
		return "Checkout clean"
	case t.IsWeeklyClean:
		return "Weekly service clean"
	case t.IsArrival:
		return "Arrival prep"
	default:
		return "Cleaning"
	}
}
