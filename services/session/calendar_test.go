package session

import (
	"testing"
	"time"

	"mindhaven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDateBookable_PastDatesNeverBookable(t *testing.T) {
	av := models.WeeklyAvailability{
		"monday": {{Start: "09:00", End: "17:00"}},
	}
	now := time.Date(2026, time.September, 2, 15, 30, 0, 0, time.UTC) // Wednesday afternoon

	lastMonday := date(2026, time.August, 31)
	assert.False(t, IsDateBookable(lastMonday, av, nil, now))

	yesterday := date(2026, time.September, 1)
	assert.False(t, IsDateBookable(yesterday, av, nil, now))
}

func TestIsDateBookable_TodayCountsRegardlessOfTimeOfDay(t *testing.T) {
	av := models.WeeklyAvailability{}
	// Late evening: the date comparison is day-granular, so today stays bookable.
	now := time.Date(2026, time.September, 2, 23, 55, 0, 0, time.UTC)

	today := date(2026, time.September, 2)
	assert.True(t, IsDateBookable(today, av, nil, now))
}

func TestIsDateBookable_WeekendWithoutExplicitRanges(t *testing.T) {
	av := models.WeeklyAvailability{}
	now := date(2026, time.August, 31)

	saturday := date(2026, time.September, 5)
	assert.False(t, IsDateBookable(saturday, av, nil, now))

	withSaturday := models.WeeklyAvailability{
		"saturday": {{Start: "10:00", End: "13:00"}},
	}
	assert.True(t, IsDateBookable(saturday, withSaturday, nil, now))
}

func TestIsDateBookable_BlockedDateWins(t *testing.T) {
	av := models.WeeklyAvailability{
		"friday": {{Start: "09:00", End: "17:00"}},
	}
	now := date(2026, time.August, 31)
	friday := date(2026, time.September, 4)

	booked := DateSet{"2026-09-04": true}
	assert.True(t, IsDateBookable(friday, av, nil, now))
	assert.False(t, IsDateBookable(friday, av, booked, now))
}

func TestBuildCalendar_Window(t *testing.T) {
	av := models.WeeklyAvailability{}
	now := date(2026, time.August, 31) // Monday
	booked := DateSet{"2026-09-01": true}

	days := BuildCalendar(now, 7, av, booked, now)
	require.Len(t, days, 7)

	assert.True(t, days[0].Bookable, "Monday open")
	assert.Len(t, days[0].Slots, 8)

	assert.False(t, days[1].Bookable, "Tuesday blocked by existing session")
	assert.Empty(t, days[1].Slots)

	assert.False(t, days[5].Bookable, "Saturday closed")
	assert.False(t, days[6].Bookable, "Sunday closed")
}
