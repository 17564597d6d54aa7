// Package recurrence expands repeating commitments into concrete
// calendar intervals.
//
// A commitment carries a base interval and a Rule describing how it
// repeats (daily, weekly, or by calendar month) up to an end date.
// Expand materializes the rule into an ordered slice of occurrences;
// Seq yields the same occurrences lazily.
package recurrence

import (
	"errors"
	"time"
)

// Sentinel errors for the recurrence package.
// Use errors.Is to check: errors.Is(err, recurrence.ErrTooManyOccurrences)
var (
	ErrEndBeforeStart     = errors.New("recurrence: interval end time must be after start time")
	ErrUntilBeforeStart   = errors.New("recurrence: recurrence end date must be after start date")
	ErrTooManyOccurrences = errors.New("recurrence: rule expands beyond the occurrence limit")
	ErrUnknownFrequency   = errors.New("recurrence: unknown frequency")
)

// Interval is a half-open span of wall-clock time. End must be after Start.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the interval length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Validate checks the End > Start invariant.
func (iv Interval) Validate() error {
	if !iv.End.After(iv.Start) {
		return ErrEndBeforeStart
	}
	return nil
}
