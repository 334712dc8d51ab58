package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

func TestCalendar_DayBoundsFollowTimezone(t *testing.T) {
	// 20:00 UTC on the 15th is already 01:30 on the 16th in IST
	instant := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	cal := NewCalendarWithClock(ist, fixedClock(instant))

	assert.Equal(t, "2026-10-16", cal.DayKey(cal.Now()))

	from, to := cal.DayBounds(cal.Now())
	assert.Equal(t, time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 10, 16, 18, 30, 0, 0, time.UTC), to)
	assert.Equal(t, time.UTC, from.Location())
}

func TestCalendar_AddDaysAndToday(t *testing.T) {
	cal := NewCalendarWithClock(time.UTC, fixedClock(time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)))

	today := cal.Today()
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, "2026-02-28", cal.DayKey(cal.AddDays(today, -1)))
	assert.Equal(t, "2026-01-30", cal.DayKey(cal.AddDays(today, -30)))
}

func TestCalendar_ParseDay(t *testing.T) {
	cal := NewCalendar(ist)

	day, err := cal.ParseDay("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", cal.DayKey(day))

	for _, bad := range []string{"", "16-10-2026", "2026/10/16", "2026-13-01"} {
		_, err := cal.ParseDay(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestCalendar_NilDefaults(t *testing.T) {
	cal := NewCalendarWithClock(nil, nil)
	assert.WithinDuration(t, time.Now(), cal.Now(), time.Minute)
}
