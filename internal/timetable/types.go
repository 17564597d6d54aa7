// Package timetable models a date-indexed study schedule and the
// operations that maintain it: generating sessions from a workload and
// redistributing missed sessions onto future days.
package timetable

import (
	"sort"
	"time"

	"github.com/abhisek/studyplan/pkg/timeutil"
)

// Kind classifies a scheduled session.
type Kind string

const (
	KindStudy    Kind = "study"
	KindReview   Kind = "review"
	KindHomework Kind = "homework"
)

// Session is a single planned study block. Date is a YYYY-MM-DD key
// and StartTime an HH:MM clock string, matching the schedule index.
type Session struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	Kind            Kind   `json:"kind"`
	Completed       bool   `json:"completed"`
	Note            string `json:"note,omitempty"`
}

// Schedule maps date keys to the ordered sessions of that day.
type Schedule map[string][]Session

// Dates returns the schedule's date keys in ascending order.
func (s Schedule) Dates() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for k, sessions := range s {
		cp := make([]Session, len(sessions))
		copy(cp, sessions)
		out[k] = cp
	}
	return out
}

// Incomplete returns the sessions on dates strictly before asOf that
// were never marked completed, in date then start-time order. These are
// the candidates for redistribution.
func (s Schedule) Incomplete(asOf string) []Session {
	var out []Session
	for _, date := range s.Dates() {
		if date >= asOf {
			break
		}
		for _, sess := range s[date] {
			if !sess.Completed {
				out = append(out, sess)
			}
		}
	}
	return out
}

// Timetable is the persisted wrapper around a schedule.
type Timetable struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HorizonEnd returns the timetable's last date key.
func (t Timetable) HorizonEnd() string {
	return timeutil.DateKey(t.End)
}
