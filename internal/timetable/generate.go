package timetable

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

// GenerateConfig tunes schedule generation.
type GenerateConfig struct {
	// SessionMinutes is the target session length; a shorter slot caps it.
	SessionMinutes int
	// MaxSessionsPerDay limits how many sessions one day receives.
	MaxSessionsPerDay int
}

// DefaultGenerateConfig returns the standard generation tuning.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		SessionMinutes:    60,
		MaxSessionsPerDay: 3,
	}
}

// Generate builds a fresh schedule for the date range from the topic
// list and the weekly availability template. Topics are cycled weakest
// confidence first, one session per enabled slot, so shaky topics get
// the earliest and most frequent attention. Every date in the range
// appears as a key even when no slot applies, which keeps future dates
// eligible for redistribution.
func Generate(topics []models.Topic, slots []models.AvailabilitySlot, start, end time.Time, cfg GenerateConfig) Schedule {
	if cfg.SessionMinutes <= 0 {
		cfg = DefaultGenerateConfig()
	}

	ordered := make([]models.Topic, len(topics))
	copy(ordered, topics)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Confidence != ordered[j].Confidence {
			return ordered[i].Confidence < ordered[j].Confidence
		}
		return ordered[i].Name < ordered[j].Name
	})

	schedule := make(Schedule)
	next := 0

	for day := timeutil.StartOfDay(start); !day.After(timeutil.StartOfDay(end)); day = day.AddDate(0, 0, 1) {
		key := timeutil.DateKey(day)
		schedule[key] = []Session{}
		if len(ordered) == 0 {
			continue
		}

		count := 0
		for _, slot := range daySlots(slots, day.Weekday()) {
			if count >= cfg.MaxSessionsPerDay {
				break
			}
			topic := ordered[next%len(ordered)]
			next++

			minutes := cfg.SessionMinutes
			if m := slot.Minutes(); m < minutes {
				minutes = m
			}
			if minutes <= 0 {
				continue
			}

			schedule[key] = append(schedule[key], Session{
				ID:              uuid.NewString(),
				Date:            key,
				StartTime:       slot.StartTime,
				Subject:         topic.Subject,
				Topic:           topic.Name,
				DurationMinutes: minutes,
				Kind:            KindStudy,
			})
			count++
		}
	}
	return schedule
}

// daySlots returns the enabled slots covering the weekday, ordered by
// start time.
func daySlots(slots []models.AvailabilitySlot, day time.Weekday) []models.AvailabilitySlot {
	var out []models.AvailabilitySlot
	for _, s := range slots {
		if s.AppliesOn(day) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}
