package mastery

import (
	"sort"
	"time"

	"github.com/abhisek/studyplan/pkg/timeutil"
)

// TopicProgress holds the spaced repetition state for a single topic.
// SuccessfulSessions never exceeds TotalSessions, and Tier is always
// consistent with the counters.
type TopicProgress struct {
	TopicID            string    `json:"topic_id" db:"topic_id"`
	TotalSessions      int       `json:"total_sessions" db:"total_sessions"`
	SuccessfulSessions int       `json:"successful_sessions" db:"successful_sessions"`
	Tier               Tier      `json:"tier" db:"tier"`
	LastReviewedAt     time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	NextReviewDate     time.Time `json:"next_review_date" db:"next_review_date"`
}

// SuccessRate returns the percentage of successful sessions.
func (p TopicProgress) SuccessRate() float64 {
	if p.TotalSessions == 0 {
		return 0
	}
	return float64(p.SuccessfulSessions) / float64(p.TotalSessions) * 100
}

// IsDue reports whether the topic is due for review: the review date
// has arrived and the topic has not yet reached mastery.
func (p TopicProgress) IsDue(now time.Time) bool {
	if p.Tier == TierMastery {
		return false
	}
	return !timeutil.StartOfDay(p.NextReviewDate).After(timeutil.StartOfDay(now))
}

// RecordOutcome folds one session outcome into a topic's progress and
// returns the updated record. A nil prev starts a fresh record. The
// function is pure: prev is never mutated.
func RecordOutcome(prev *TopicProgress, topicID string, success bool, now time.Time) TopicProgress {
	next := TopicProgress{TopicID: topicID}
	if prev != nil {
		next = *prev
		next.TopicID = topicID
	}

	next.TotalSessions++
	if success {
		next.SuccessfulSessions++
	}

	next.Tier = TierFor(next.SuccessRate(), next.TotalSessions)
	next.LastReviewedAt = now
	next.NextReviewDate = timeutil.StartOfDay(now).AddDate(0, 0, next.Tier.ReviewOffsetDays())
	return next
}

// Due filters records to the topics due for review at now, ordered by
// next review date (most overdue first) with topic ID as tiebreaker.
func Due(records []TopicProgress, now time.Time) []TopicProgress {
	var due []TopicProgress
	for _, r := range records {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewDate.Equal(due[j].NextReviewDate) {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		}
		return due[i].TopicID < due[j].TopicID
	})
	return due
}
