// Package models holds the persisted value objects of the study
// planner: subjects, topics, commitments, and availability templates.
// The computation packages receive these as fully-loaded snapshots and
// return new values; they never reach into storage themselves.
package models

import (
	"time"

	"github.com/abhisek/studyplan/internal/recurrence"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

// Subject groups topics and commitments under one course of study.
type Subject struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
}

// Topic is a unit of study within a subject. Confidence is the user's
// self-rating from 1 (shaky) to 10 (solid) and only weights the
// feasibility calculation.
type Topic struct {
	ID         string `db:"id"`
	UserID     string `db:"user_id"`
	SubjectID  string `db:"subject_id"`
	Subject    string `db:"subject"`
	Name       string `db:"name"`
	Confidence int    `db:"confidence"`
}

// Event is a committed block of time, optionally recurring. Recurring
// events are stored once and expanded on read.
type Event struct {
	ID         string          `db:"id"`
	UserID     string          `db:"user_id"`
	Title      string          `db:"title"`
	Subject    string          `db:"subject"`
	Start      time.Time       `db:"start_time"`
	End        time.Time       `db:"end_time"`
	Recurrence recurrence.Rule `db:"-"`
}

// Interval returns the event's base time interval.
func (e Event) Interval() recurrence.Interval {
	return recurrence.Interval{Start: e.Start, End: e.End}
}

// Homework is a deadline-bound assignment with an estimated duration.
type Homework struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Title           string    `db:"title"`
	Subject         string    `db:"subject"`
	Due             time.Time `db:"due"`
	DurationMinutes int       `db:"duration_minutes"`
	Completed       bool      `db:"completed"`
}

// TestDate is an upcoming exam.
type TestDate struct {
	ID      string    `db:"id"`
	UserID  string    `db:"user_id"`
	Title   string    `db:"title"`
	Subject string    `db:"subject"`
	Date    time.Time `db:"test_date"`
}

// AvailabilitySlot is one entry of a weekly availability template.
// A Daily slot applies to every weekday; otherwise Weekday selects the
// day. Times are HH:MM clock strings.
type AvailabilitySlot struct {
	ID        string       `db:"id"`
	UserID    string       `db:"user_id"`
	Weekday   time.Weekday `db:"weekday"`
	Daily     bool         `db:"daily"`
	Enabled   bool         `db:"enabled"`
	StartTime string       `db:"start_time"`
	EndTime   string       `db:"end_time"`
}

// Minutes returns the slot length in minutes, or 0 when the slot is
// disabled or malformed.
func (s AvailabilitySlot) Minutes() int {
	if !s.Enabled {
		return 0
	}
	start, err := timeutil.ClockMinutes(s.StartTime)
	if err != nil {
		return 0
	}
	end, err := timeutil.ClockMinutes(s.EndTime)
	if err != nil {
		return 0
	}
	if end <= start {
		return 0
	}
	return end - start
}

// AppliesOn reports whether the slot covers the given weekday.
func (s AvailabilitySlot) AppliesOn(day time.Weekday) bool {
	return s.Enabled && (s.Daily || s.Weekday == day)
}

// WeeklyMinutes sums the enabled slot durations over a full week.
// Daily slots count once per weekday.
func WeeklyMinutes(slots []AvailabilitySlot) int {
	total := 0
	for _, s := range slots {
		m := s.Minutes()
		if m == 0 {
			continue
		}
		if s.Daily {
			total += 7 * m
		} else {
			total += m
		}
	}
	return total
}
