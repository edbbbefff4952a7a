package housekeeping

import "coliving/internal/domain"

// Plan is a task list split into display tiers.
type Plan struct {
	High   []domain.RoomTask `json:"high"`
	Normal []domain.RoomTask `json:"normal"`
	Low    []domain.RoomTask `json:"low"`
}

// SplitByPriority classifies tasks for display and messaging. It reads only
// the boolean task flags, never the numeric priority: weekly service cleans
// always land in low, arrivals with an early check-in in high, and
// everything else in normal. A manual priority override therefore changes
// the ordering within a tier but never the tier itself.
func SplitByPriority(tasks []domain.RoomTask) Plan {
	var plan Plan
	for _, t := range tasks {
		switch {
		case t.IsWeeklyClean:
			plan.Low = append(plan.Low, t)
		case t.IsArrival && t.HasEarlyArrival:
			plan.High = append(plan.High, t)
		default:
			plan.Normal = append(plan.Normal, t)
		}
	}
	return plan
}
