package feasibility

import (
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

// Thresholds for the overall status and the per-week banding.
const (
	overScheduledAbove = 1.05
	optimalAbove       = 0.95
	balancedAbove      = 0.7

	manageableBelow = 0.6
	busyBelow       = 0.85
)

// Evaluate computes a feasibility report for the input snapshot.
// It is a pure function: identical inputs produce identical reports.
// Negative or out-of-range values are clamped, never rejected.
func Evaluate(in Input) Report {
	w := in.Weights
	if w == (Weights{}) {
		w = DefaultWeights()
	}

	start := timeutil.StartOfDay(in.Start)
	end := timeutil.StartOfDay(in.End)
	totalDays := timeutil.DaysBetween(start, end)
	if totalDays == 0 {
		return Report{Status: StatusUnderUtilized, Recommendations: []string{
			"The selected period is empty; pick an end date after the start date.",
		}}
	}

	required := requiredHours(in, w)
	weeklyHours := float64(models.WeeklyMinutes(in.Availability)) / 60

	available := weeklyHours*float64(totalDays)/7 - eventHours(in.Events, start, end)
	if available < 0 {
		available = 0
	}

	utilization := safeUtilization(required, available)

	weeks := weekBreakdown(in, w, start, end, totalDays, required, weeklyHours)

	status := statusFor(utilization)

	return Report{
		Status:          status,
		HoursNeeded:     round2(required),
		HoursAvailable:  round2(available),
		Utilization:     round2(utilization),
		Weeks:           weeks,
		Recommendations: recommend(status, overwhelmingCount(weeks)),
	}
}

// requiredHours sums topic, homework, and test-prep demand.
func requiredHours(in Input, w Weights) float64 {
	minutes := 0
	for _, t := range in.Topics {
		minutes += topicMinutes(t.Confidence, w)
	}
	for _, h := range in.Homework {
		d := h.DurationMinutes
		if d <= 0 {
			d = w.DefaultHomeworkMinutes
		}
		minutes += d
	}
	return float64(minutes)/60 + w.TestPrepHours*float64(len(in.Tests))
}

// topicMinutes applies the confidence weighting: lower confidence means
// more minutes, linearly, clamped to the configured range.
func topicMinutes(confidence int, w Weights) int {
	if confidence < 1 {
		confidence = 1
	}
	if confidence > 10 {
		confidence = 10
	}
	m := w.TopicBaseMinutes - w.TopicConfidenceStep*(confidence-1)
	if m < w.TopicMinMinutes {
		m = w.TopicMinMinutes
	}
	if m > w.TopicMaxMinutes {
		m = w.TopicMaxMinutes
	}
	return m
}

// eventHours totals the de-duplicated duration of event occurrences
// whose start falls inside [start, end]. The dedup key is
// (title, start, end) so re-imported copies of the same occurrence are
// not double-subtracted.
func eventHours(events []CommittedEvent, start, end time.Time) float64 {
	rangeEnd := end.AddDate(0, 0, 1) // inclusive end date
	seen := make(map[string]bool)
	hours := 0.0
	for _, ev := range events {
		if ev.Start.Before(start) || !ev.Start.Before(rangeEnd) {
			continue
		}
		dur := ev.End.Sub(ev.Start)
		if dur <= 0 {
			continue
		}
		key := fmt.Sprintf("%s|%s|%s", ev.Title, ev.Start.Format(time.RFC3339), ev.End.Format(time.RFC3339))
		if seen[key] {
			continue
		}
		seen[key] = true
		hours += dur.Hours()
	}
	return hours
}

// weekBreakdown walks the range in consecutive 7-day (or shorter final)
// windows, giving each a proportional share of the required hours and
// its own availability after event subtraction.
func weekBreakdown(in Input, w Weights, start, end time.Time, totalDays int, required, weeklyHours float64) []WeekWindow {
	var weeks []WeekWindow
	for ws := start; !ws.After(end); ws = ws.AddDate(0, 0, 7) {
		we := ws.AddDate(0, 0, 6)
		if we.After(end) {
			we = end
		}
		days := timeutil.DaysBetween(ws, we)

		avail := weeklyHours*float64(days)/7 - eventHours(in.Events, ws, we)
		if avail < 0 {
			avail = 0
		}
		req := required * float64(days) / float64(totalDays)
		util := safeUtilization(req, avail)

		weeks = append(weeks, WeekWindow{
			Start:          ws,
			End:            we,
			RequiredHours:  round2(req),
			AvailableHours: round2(avail),
			Utilization:    round2(util),
			Band:           bandFor(util),
		})
	}
	return weeks
}

// safeUtilization guards the zero-available case: nothing required is
// utilization 0, anything required against zero availability counts as
// fully utilized.
func safeUtilization(required, available float64) float64 {
	if available == 0 {
		if required > 0 {
			return 1
		}
		return 0
	}
	return required / available
}

func statusFor(utilization float64) Status {
	switch {
	case utilization > overScheduledAbove:
		return StatusOverScheduled
	case utilization > optimalAbove:
		return StatusOptimal
	case utilization > balancedAbove:
		return StatusBalanced
	default:
		return StatusUnderUtilized
	}
}

func bandFor(utilization float64) Band {
	switch {
	case utilization < manageableBelow:
		return BandManageable
	case utilization < busyBelow:
		return BandBusy
	default:
		return BandOverwhelming
	}
}

func overwhelmingCount(weeks []WeekWindow) int {
	n := 0
	for _, wk := range weeks {
		if wk.Band == BandOverwhelming {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
