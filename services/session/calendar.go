package session

import (
	"time"

	"mindhaven/models"
)

// DateSet holds "YYYY-MM-DD" keys for dates already carrying a non-terminal
// session with a therapist.
type DateSet map[string]bool

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsDateBookable decides whether a calendar date can be offered to a patient
// at all. A date qualifies when it is not before today (day granularity), the
// weekday has availability (explicit or default workday), and no non-terminal
// session already occupies it. Blocking is per date, not per slot: one
// pending session hides the whole date.
func IsDateBookable(date time.Time, av models.WeeklyAvailability, booked DateSet, now time.Time) bool {
	if dayOf(date).Before(dayOf(now)) {
		return false
	}
	if len(effectiveRanges(date, av)) == 0 {
		return false
	}
	return !booked[date.Format("2006-01-02")]
}

// BuildCalendar assembles the patient-facing view for a window of days
// starting at from. Slots are resolved only for bookable dates.
func BuildCalendar(from time.Time, days int, av models.WeeklyAvailability, booked DateSet, now time.Time) []models.DayAvailability {
	out := make([]models.DayAvailability, 0, days)
	for d := dayOf(from); len(out) < days; d = d.AddDate(0, 0, 1) {
		day := models.DayAvailability{Date: d.Format("2006-01-02")}
		if IsDateBookable(d, av, booked, now) {
			day.Bookable = true
			day.Slots = ResolveDaySlots(d, av)
		}
		out = append(out, day)
	}
	return out
}
