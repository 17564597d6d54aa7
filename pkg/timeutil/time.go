// Package timeutil provides small date and clock-time helpers shared
// across the scheduling packages. Dates are represented as YYYY-MM-DD
// strings and clock times as HH:MM strings.
package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date key format used by schedules.
const DateLayout = "2006-01-02"

// ClockLayout is the canonical clock-time format for slot boundaries.
const ClockLayout = "15:04"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats t as a YYYY-MM-DD schedule key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD schedule key into a UTC midnight instant.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t, nil
}

// DatesEqual reports whether t1 and t2 fall on the same calendar day.
func DatesEqual(t1, t2 time.Time) bool {
	return StartOfDay(t1).Equal(StartOfDay(t2))
}

// DaysBetween returns the number of calendar days from start to end
// inclusive. Returns 0 if end is before start.
func DaysBetween(start, end time.Time) int {
	s := StartOfDay(start)
	e := StartOfDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// ClockMinutes converts an HH:MM string to minutes after midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesClock converts minutes after midnight back to an HH:MM string.
// Values outside a single day are clamped to [0, 23:59].
func MinutesClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
