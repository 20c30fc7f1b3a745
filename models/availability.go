package models

// TimeRange is a window within a day, "HH:MM" 24h clock, [Start, End).
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeeklyAvailability maps lowercase weekday names ("monday".."sunday") to the
// ranges a therapist takes sessions in. Absent days are meaningful: weekdays
// fall back to default working hours, weekends stay closed.
type WeeklyAvailability map[string][]TimeRange

// DayAvailability is one calendar date on a therapist's public calendar.
type DayAvailability struct {
	Date     string   `json:"date"` // "YYYY-MM-DD"
	Bookable bool     `json:"bookable"`
	Slots    []string `json:"slots,omitempty"` // "HH:MM" start times
}

// TherapistCalendar is the patient-facing calendar view for one therapist.
type TherapistCalendar struct {
	TherapistID string            `json:"therapistId"`
	Days        []DayAvailability `json:"days"`
}
