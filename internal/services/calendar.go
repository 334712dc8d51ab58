package services

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Calendar pins "today" to one timezone. Every date-bucketed query asks it for
// day bounds so the landing counter, order filters and dashboard agree on what a day is.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar uses time.Now; loc nil means time.Local.
func NewCalendar(loc *time.Location) Calendar {
	return NewCalendarWithClock(loc, time.Now)
}

func NewCalendarWithClock(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

// Now is the current instant in the calendar's timezone.
func (c Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// Today is local midnight of the current day.
func (c Calendar) Today() time.Time {
	return c.StartOfDay(c.Now())
}

// AddDays moves by calendar days, so DST transitions keep midnight at midnight.
func (c Calendar) AddDays(day time.Time, n int) time.Time {
	day = day.In(c.loc)
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, c.loc)
}

// DayBounds returns [start, end) of the day containing t, in UTC for storage comparisons.
func (c Calendar) DayBounds(t time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(t)
	return start.UTC(), c.AddDays(start, 1).UTC()
}

// DayKey formats the local date of t as YYYY-MM-DD.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayLayout)
}

// ParseDay reads YYYY-MM-DD as a local date.
func (c Calendar) ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dayLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, s)
	}
	return d, nil
}
