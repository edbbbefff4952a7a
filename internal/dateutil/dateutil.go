// Package dateutil holds the calendar arithmetic the booking and
// housekeeping engines are built on. Dates travel through the system as
// "YYYY-MM-DD" strings, which compare correctly as plain strings; these
// helpers are the only place they are parsed.
package dateutil

import (
	"time"

	"coliving/internal/domain"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

var weekdayKeys = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// FormatDate renders t as "YYYY-MM-DD" in local time. Zero time yields "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// ParseDate parses a "YYYY-MM-DD" string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// CalculateNights returns the number of nights between check-in and
// check-out. Invalid input or checkOut <= checkIn yields 0, never a
// negative count. Dates are diffed in UTC so a local DST transition
// inside the stay cannot shift the count.
func CalculateNights(checkIn, checkOut string) int {
	in, err := time.Parse(Layout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(Layout, checkOut)
	if err != nil {
		return 0
	}
	nights := int(out.Sub(in) / (24 * time.Hour))
	if nights < 0 {
		return 0
	}
	return nights
}

// AddMonths shifts a date by n calendar months with the native day-of-month
// rollover (Jan 31 + 1 month = Mar 2/3). Invalid input yields "".
func AddMonths(dateStr string, n int) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, n, 0))
}

// WeekdayKey returns the lowercase weekday name ("sunday".."saturday")
// for a date, or "" for invalid input.
func WeekdayKey(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return ""
	}
	return weekdayKeys[int(t.Weekday())]
}

// DaysArray enumerates every day from start through end, inclusive of both
// endpoints. Returns nil when end precedes start.
func DaysArray(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// OccupiedDates collects every calendar day covered by a non-cancelled
// booking of the room, over the half-open [checkIn, checkOut) interval, so
// checkout days stay selectable for a new arrival. The booking with
// excludeID is skipped, which lets an edit ignore its own dates.
func OccupiedDates(bookings []domain.Booking, roomID, excludeID string) map[string]bool {
	occupied := make(map[string]bool)
	for _, b := range bookings {
		if b.RoomID != roomID || !b.Active() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		in, err := ParseDate(b.CheckIn)
		if err != nil {
			continue
		}
		out, err := ParseDate(b.CheckOut)
		if err != nil {
			continue
		}
		for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
			occupied[FormatDate(d)] = true
		}
	}
	return occupied
}
