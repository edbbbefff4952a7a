package housekeeping

import (
	"sort"

	"coliving/internal/dateutil"
	"coliving/internal/domain"
)

// Priority buckets (lower = more urgent).
const (
	PriorityEarlyArrival = 1
	PriorityArrival      = 2
)

// BuildCleaningTasks derives the housekeeping work for one date: one task
// per room that needs cleaning, sorted by ascending priority and then room
// name. Rooms without a stored status are implicitly clean.
//
// A room needs cleaning when a guest checks out that day, when its stored
// status is dirty, or when a long/medium-stay guest's weekly service day
// comes around. The weekly rule is strict about the edges: the guest must
// be in-house before the date and still in-house on it, so arrival and
// checkout days never produce a weekly task.
func BuildCleaningTasks(targetDate string, rooms []domain.Room, bookings []domain.Booking, statuses map[string]domain.RoomStatus) []domain.RoomTask {
	if _, err := dateutil.ParseDate(targetDate); err != nil {
		return nil
	}
	weekday := dateutil.WeekdayKey(targetDate)

	byRoom := make(map[string][]domain.Booking)
	for _, b := range bookings {
		if !b.Active() {
			continue
		}
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	var tasks []domain.RoomTask
	for _, room := range rooms {
		var (
			isCheckout, isWeekly, isArrival, earlyArrival bool
			guestName                                     string
		)
		for _, b := range byRoom[room.ID] {
			if b.CheckOut == targetDate {
				isCheckout = true
				if guestName == "" {
					guestName = b.GuestName
				}
			}
			if isWeeklyServiceClean(b, targetDate, weekday) {
				isWeekly = true
				if guestName == "" {
					guestName = b.GuestName
				}
			}
			if b.CheckIn == targetDate {
				isArrival = true
				earlyArrival = earlyArrival || b.EarlyCheckIn
			}
		}

		stored, hasStored := statuses[room.ID]
		if !hasStored {
			stored = domain.CleanBaseline(room.ID)
		}

		if !isCheckout && stored.Status != domain.RoomDirty && !isWeekly {
			continue
		}

		effective := stored.Status
		if isCheckout {
			// A checkout always shows as checkout_dirty, whatever was
			// stored manually.
			effective = domain.RoomCheckoutDirty
		}

		priority := domain.DefaultPriority
		if isArrival && earlyArrival {
			priority = PriorityEarlyArrival
		} else if isArrival {
			priority = PriorityArrival
		}
		if hasStored && stored.Priority > 0 && stored.Priority != domain.DefaultPriority {
			priority = stored.Priority
		}

		assigned := stored.AssignedTo
		if assigned == "" {
			assigned = domain.UnassignedStaff
		}

		tasks = append(tasks, domain.RoomTask{
			RoomID:          room.ID,
			RoomName:        room.Name,
			PropertyID:      room.PropertyID,
			PropertyName:    room.PropertyName,
			Date:            targetDate,
			Status:          effective,
			Priority:        priority,
			AssignedTo:      assigned,
			IsCheckout:      isCheckout,
			IsWeeklyClean:   isWeekly,
			IsArrival:       isArrival,
			HasEarlyArrival: earlyArrival,
			GuestName:       guestName,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].RoomName < tasks[j].RoomName
	})
	return tasks
}

func isWeeklyServiceClean(b domain.Booking, targetDate, weekday string) bool {
	if !b.IsLongTerm && b.StayCategory != domain.StayMedium && b.StayCategory != domain.StayLong {
		return false
	}
	if b.WeeklyCleaningDay == "" || b.WeeklyCleaningDay != weekday {
		return false
	}
	return b.CheckIn < targetDate && targetDate < b.CheckOut
}
