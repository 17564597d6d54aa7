// Package mastery tracks per-topic learning progress using a spaced
// repetition cadence. Each recorded session outcome feeds a mastery
// tier, and the tier determines how far out the next review lands.
package mastery

// Tier is a discrete label summarizing a topic's learning progress.
type Tier string

const (
	TierNotStarted   Tier = "not_started"
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierMastery      Tier = "mastery"
)

// reviewOffsetDays maps each tier to the number of days until the next
// review is due.
var reviewOffsetDays = map[Tier]int{
	TierNotStarted:   0,
	TierBeginner:     1,
	TierIntermediate: 3,
	TierAdvanced:     7,
	TierMastery:      14,
}

// ReviewOffsetDays returns how many days after a session the next
// review of a topic at this tier falls.
func (t Tier) ReviewOffsetDays() int {
	if d, ok := reviewOffsetDays[t]; ok {
		return d
	}
	return 0
}

// TierFor derives the mastery tier from a success rate (percent) and a
// total session count. Rules are evaluated top to bottom; the first
// match wins. The tier is a pure function of its inputs; callers never
// set it directly.
func TierFor(successRate float64, totalSessions int) Tier {
	switch {
	case totalSessions == 0:
		return TierNotStarted
	case totalSessions < 3:
		return TierBeginner
	case successRate >= 90 && totalSessions >= 8:
		return TierMastery
	case successRate >= 80 && totalSessions >= 5:
		return TierAdvanced
	case successRate >= 60:
		return TierIntermediate
	default:
		return TierBeginner
	}
}
