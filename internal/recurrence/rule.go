package recurrence

import (
	"fmt"
	"time"
)

// Frequency is the repetition unit of a Rule.
type Frequency string

const (
	None    Frequency = "none"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// MaxOccurrences is the cap on how many occurrences a single rule may
// expand to. Rules that would exceed it are rejected up front rather
// than truncated.
const MaxOccurrences = 100

// Rule describes how a commitment repeats. A None rule has no Until
// date; every other frequency repeats until Until (inclusive).
type Rule struct {
	Freq  Frequency `json:"freq"`
	Until time.Time `json:"until,omitzero"`
}

// NoRepeat is the rule for a one-off commitment.
var NoRepeat = Rule{Freq: None}

// Validate checks the rule against its base interval: the frequency
// must be known, Until must not precede the base start, and the
// analytic occurrence count must stay within MaxOccurrences.
func (r Rule) Validate(base Interval) error {
	if err := base.Validate(); err != nil {
		return err
	}
	switch r.Freq {
	case None:
		return nil
	case Daily, Weekly, Monthly:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, r.Freq)
	}
	if r.Until.Before(base.Start) {
		return ErrUntilBeforeStart
	}
	n, err := Count(base, r)
	if err != nil {
		return err
	}
	if n > MaxOccurrences {
		return fmt.Errorf("%w: %d occurrences (limit %d)", ErrTooManyOccurrences, n, MaxOccurrences)
	}
	return nil
}

// Count returns the number of occurrences the rule expands to without
// generating them. The count is computed arithmetically so oversized
// rules can be rejected cheaply.
func Count(base Interval, r Rule) (int, error) {
	switch r.Freq {
	case None:
		return 1, nil
	case Daily:
		return spanDays(base.Start, r.Until) + 1, nil
	case Weekly:
		return spanDays(base.Start, r.Until)/7 + 1, nil
	case Monthly:
		months := (r.Until.Year()-base.Start.Year())*12 + int(r.Until.Month()-base.Start.Month())
		if months < 0 {
			months = 0
		}
		// The month clamp can push the computed occurrence past Until
		// (e.g. Jan 31 base with Until = Feb 27). Step back as needed.
		for months > 0 && nthStart(base.Start, Monthly, months).After(r.Until) {
			months--
		}
		return months + 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, r.Freq)
	}
}

// spanDays counts whole calendar days from start to until, never negative.
func spanDays(start, until time.Time) int {
	d := int(until.Sub(start).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// nthStart returns the start instant of the nth occurrence (0-based).
// Daily and weekly steps use calendar-day arithmetic. Monthly steps are
// always taken from the base start so that a late-in-month anchor is
// preserved: Jan 31 yields Feb 28 (or 29), then Mar 31, clamped to the
// last valid day of the target month, never rolled into the next month.
func nthStart(start time.Time, f Frequency, n int) time.Time {
	switch f {
	case Daily:
		return start.AddDate(0, 0, n)
	case Weekly:
		return start.AddDate(0, 0, 7*n)
	case Monthly:
		return addMonthsClamped(start, n)
	}
	return start
}

// addMonthsClamped advances t by n calendar months, clamping the day of
// month to the last valid day of the target month.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
