package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mindhaven/config"
	"mindhaven/models"
)

// Default working hours applied to weekdays with no explicit availability.
// Saturday and Sunday never get a default: absence there means closed.
const (
	fallbackWorkdayStart = "09:00"
	fallbackWorkdayEnd   = "17:00"
)

func weekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

func isWorkday(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

func defaultWorkday() models.TimeRange {
	start := config.AppConfig.DefaultWorkdayStart
	end := config.AppConfig.DefaultWorkdayEnd
	if start == "" {
		start = fallbackWorkdayStart
	}
	if end == "" {
		end = fallbackWorkdayEnd
	}
	return models.TimeRange{Start: start, End: end}
}

// effectiveRanges returns the ranges in force for the date: the therapist's
// explicit ranges, or the default workday on Monday-Friday.
func effectiveRanges(date time.Time, av models.WeeklyAvailability) []models.TimeRange {
	if ranges := av[weekdayName(date)]; len(ranges) > 0 {
		return ranges
	}
	if isWorkday(date) {
		return []models.TimeRange{defaultWorkday()}
	}
	return nil
}

// parseHour extracts the hour component of an "HH:MM" value.
func parseHour(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time-of-day %q", v)
	}
	return h, nil
}

// ResolveDaySlots turns the therapist's weekly availability into the bookable
// start times for one calendar date. Slots are emitted on whole-hour
// boundaries from the start hour up to, exclusive of, the end hour; sub-hour
// precision in a range is an accepted quantization, not an error. Pure:
// same date and availability snapshot always yield the same slots.
func ResolveDaySlots(date time.Time, av models.WeeklyAvailability) []string {
	var slots []string
	for _, r := range effectiveRanges(date, av) {
		startHour, err := parseHour(r.Start)
		if err != nil {
			continue
		}
		endHour, err := parseHour(r.End)
		if err != nil {
			continue
		}
		for h := startHour; h < endHour; h++ {
			slots = append(slots, fmt.Sprintf("%02d:00", h))
		}
	}
	return slots
}
