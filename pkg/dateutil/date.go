// Package dateutil normalises calendar dates so they compare equal regardless
// of the store they are written to.
package dateutil

import (
	"time"

	"github.com/jinzhu/now"
)

// Layout is the wire format for dates (YYYY-MM-DD).
const Layout = "2006-01-02"

// TimeLayout is the wire format for times of day (HH:MM).
const TimeLayout = "15:04"

// DateOnly returns midnight UTC of t's calendar day in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in loc as a UTC-midnight value.
func Today(clock func() time.Time, loc *time.Location) time.Time {
	return DateOnly(clock().In(loc))
}

// ParseDate parses YYYY-MM-DD into a UTC-midnight value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// MonthRange returns the first and last day of the month containing day.
func MonthRange(day time.Time) (time.Time, time.Time) {
	n := now.With(day)
	return DateOnly(n.BeginningOfMonth()), DateOnly(n.EndOfMonth())
}

// WeekStart returns the Monday of the week containing day.
func WeekStart(day time.Time) time.Time {
	return DateOnly(now.With(day).Monday())
}
