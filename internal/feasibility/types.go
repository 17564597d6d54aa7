// Package feasibility compares the study hours a workload requires
// against the hours a weekly availability template provides, over a
// target date range.
package feasibility

import (
	"time"

	"github.com/abhisek/studyplan/internal/models"
)

// Status is the overall verdict for the evaluated period.
type Status string

const (
	StatusOverScheduled Status = "over_scheduled"
	StatusOptimal       Status = "optimal"
	StatusBalanced      Status = "balanced"
	StatusUnderUtilized Status = "under_utilized"
)

// Band classifies a single week's utilization.
type Band string

const (
	BandManageable   Band = "manageable"
	BandBusy         Band = "busy"
	BandOverwhelming Band = "overwhelming"
)

// CommittedEvent is one concrete event occurrence whose duration is
// subtracted from availability. Recurring events must be expanded
// before evaluation.
type CommittedEvent struct {
	Title string
	Start time.Time
	End   time.Time
}

// Weights holds the tunable constants of the calculation. The linear
// confidence formula and the prep allowances are product-tuning knobs,
// not algorithmic necessities.
type Weights struct {
	// Per-topic required minutes: TopicBaseMinutes − TopicConfidenceStep ×
	// (confidence − 1), clamped to [TopicMinMinutes, TopicMaxMinutes].
	TopicBaseMinutes    int
	TopicConfidenceStep int
	TopicMinMinutes     int
	TopicMaxMinutes     int

	// DefaultHomeworkMinutes is used when a homework item carries no
	// duration estimate.
	DefaultHomeworkMinutes int

	// TestPrepHours is the flat preparation allowance per upcoming test.
	TestPrepHours float64
}

// DefaultWeights returns the standard tuning.
func DefaultWeights() Weights {
	return Weights{
		TopicBaseMinutes:       90,
		TopicConfidenceStep:    3,
		TopicMinMinutes:        60,
		TopicMaxMinutes:        90,
		DefaultHomeworkMinutes: 60,
		TestPrepHours:          2.5,
	}
}

// Input is the full snapshot Evaluate works from.
type Input struct {
	Topics       []models.Topic
	Homework     []models.Homework
	Tests        []models.TestDate
	Availability []models.AvailabilitySlot
	Events       []CommittedEvent
	Start        time.Time
	End          time.Time
	Weights      Weights
}

// WeekWindow is one 7-day (or shorter final) slice of the range.
type WeekWindow struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	RequiredHours  float64   `json:"required_hours"`
	AvailableHours float64   `json:"available_hours"`
	Utilization    float64   `json:"utilization"`
	Band           Band      `json:"band"`
}

// Report is the derived feasibility verdict. It is recomputed on
// demand and never persisted.
type Report struct {
	Status          Status       `json:"status"`
	HoursNeeded     float64      `json:"hours_needed"`
	HoursAvailable  float64      `json:"hours_available"`
	Utilization     float64      `json:"utilization"`
	Weeks           []WeekWindow `json:"weeks"`
	Recommendations []string     `json:"recommendations"`
}
