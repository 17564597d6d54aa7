// Package service orchestrates the planner's operations over storage,
// the pure computation packages, and the optional prioritization
// oracle.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/feasibility"
	"github.com/abhisek/studyplan/internal/mastery"
	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/recurrence"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/timetable"
	"github.com/abhisek/studyplan/pkg/timeutil"
)

// Repository is the storage surface the service needs. *store.Store
// satisfies it.
type Repository interface {
	ListTopics(ctx context.Context, userID string) ([]models.Topic, error)
	ListEvents(ctx context.Context, userID string) ([]models.Event, error)
	ListHomework(ctx context.Context, userID string, pendingOnly bool) ([]models.Homework, error)
	ListTestDates(ctx context.Context, userID string) ([]models.TestDate, error)
	ListAvailability(ctx context.Context, userID string) ([]models.AvailabilitySlot, error)

	GetProgress(ctx context.Context, userID, topicID string) (*mastery.TopicProgress, error)
	ListProgress(ctx context.Context, userID string) ([]mastery.TopicProgress, error)
	SaveProgress(ctx context.Context, userID string, p mastery.TopicProgress) error

	SaveTimetable(ctx context.Context, tt timetable.Timetable) error
	LatestTimetable(ctx context.Context, userID string) (*timetable.Timetable, error)
}

// Service exposes the planner's operations.
type Service struct {
	repo   Repository
	oracle timetable.Oracle
	logger *zap.SugaredLogger
}

// New creates a Service. The oracle may be nil, in which case
// redistribution always uses the deterministic fallback.
func New(repo Repository, oracle timetable.Oracle, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{repo: repo, oracle: oracle, logger: logger}
}

// ComputeFeasibility evaluates whether the user's workload fits their
// availability over the date range. Recurring events are expanded
// before the comparison.
func (s *Service) ComputeFeasibility(ctx context.Context, userID string, start, end time.Time) (*feasibility.Report, error) {
	topics, err := s.repo.ListTopics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	homework, err := s.repo.ListHomework(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("load homework: %w", err)
	}
	tests, err := s.repo.ListTestDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load test dates: %w", err)
	}
	slots, err := s.repo.ListAvailability(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	committed, err := s.ExpandRecurrence(ctx, userID, end)
	if err != nil {
		return nil, err
	}

	report := feasibility.Evaluate(feasibility.Input{
		Topics:       topics,
		Homework:     homework,
		Tests:        tests,
		Availability: slots,
		Events:       committed,
		Start:        start,
		End:          end,
		Weights:      feasibility.DefaultWeights(),
	})

	s.logger.Infow("feasibility evaluated",
		"user_id", userID,
		"status", report.Status,
		"hours_needed", report.HoursNeeded,
		"hours_available", report.HoursAvailable,
	)
	return &report, nil
}

// ExpandRecurrence loads the user's events and expands recurring ones
// into concrete occurrences up to horizon.
func (s *Service) ExpandRecurrence(ctx context.Context, userID string, horizon time.Time) ([]feasibility.CommittedEvent, error) {
	events, err := s.repo.ListEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	var out []feasibility.CommittedEvent
	for _, e := range events {
		rule := e.Recurrence
		if rule.Freq == "" {
			rule = recurrence.NoRepeat
		}
		// Expansion needs an end bound; open-ended rules stop at the
		// evaluation horizon. An event starting past the horizon keeps
		// only its base occurrence.
		if rule.Freq != recurrence.None && rule.Until.IsZero() {
			if horizon.Before(e.Start) {
				rule = recurrence.NoRepeat
			} else {
				rule.Until = horizon
			}
		}

		occurrences, err := recurrence.Expand(e.Interval(), rule)
		if err != nil {
			return nil, fmt.Errorf("expand event (title: %s): %w", e.Title, err)
		}
		for _, occ := range occurrences {
			out = append(out, feasibility.CommittedEvent{
				Title: e.Title,
				Start: occ.Start,
				End:   occ.End,
			})
		}
	}
	return out, nil
}

// GenerateTimetable builds and persists a fresh study schedule for the
// date range, replacing nothing: each generation is a new timetable.
func (s *Service) GenerateTimetable(ctx context.Context, userID string, start, end time.Time) (*timetable.Timetable, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end %s before start %s",
			timeutil.DateKey(end), timeutil.DateKey(start))
	}

	topics, err := s.repo.ListTopics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	slots, err := s.repo.ListAvailability(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}

	schedule := timetable.Generate(topics, slots, start, end, timetable.DefaultGenerateConfig())

	now := time.Now().UTC()
	tt := timetable.Timetable{
		ID:        uuid.NewString(),
		UserID:    userID,
		Start:     timeutil.StartOfDay(start),
		End:       timeutil.StartOfDay(end),
		Schedule:  schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.SaveTimetable(ctx, tt); err != nil {
		return nil, fmt.Errorf("save timetable: %w", err)
	}

	s.logger.Infow("timetable generated",
		"user_id", userID,
		"timetable_id", tt.ID,
		"days", len(schedule),
	)
	return &tt, nil
}

// RecordSessionOutcome folds one review outcome into the topic's
// spaced repetition record and persists it.
func (s *Service) RecordSessionOutcome(ctx context.Context, userID, topicID string, success bool, now time.Time) (mastery.TopicProgress, error) {
	prev, err := s.repo.GetProgress(ctx, userID, topicID)
	if err != nil && !store.IsNotFound(err) {
		return mastery.TopicProgress{}, fmt.Errorf("load progress: %w", err)
	}

	next := mastery.RecordOutcome(prev, topicID, success, now)
	if err := s.repo.SaveProgress(ctx, userID, next); err != nil {
		return mastery.TopicProgress{}, fmt.Errorf("save progress: %w", err)
	}

	s.logger.Infow("session outcome recorded",
		"user_id", userID,
		"topic_id", topicID,
		"success", success,
		"tier", next.Tier,
		"next_review", timeutil.DateKey(next.NextReviewDate),
	)
	return next, nil
}

// DueTopics lists the topics due for review at now, most overdue
// first.
func (s *Service) DueTopics(ctx context.Context, userID string, now time.Time) ([]mastery.TopicProgress, error) {
	records, err := s.repo.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return mastery.Due(records, now), nil
}

// reflectionOracle injects the student's reflection into every oracle
// request.
type reflectionOracle struct {
	inner      timetable.Oracle
	reflection string
}

func (r reflectionOracle) Propose(ctx context.Context, req timetable.OracleRequest) (*timetable.OracleResponse, error) {
	req.Reflection = r.reflection
	return r.inner.Propose(ctx, req)
}

// RedistributeIncomplete moves the latest timetable's missed sessions
// onto upcoming dates and persists the updated schedule. The optional
// reflection is the student's note on why sessions were missed, passed
// to the oracle for prioritization.
func (s *Service) RedistributeIncomplete(ctx context.Context, userID string, asOf time.Time, reflection string) (*timetable.Result, error) {
	tt, err := s.repo.LatestTimetable(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load timetable: %w", err)
	}

	asOfKey := timeutil.DateKey(asOf)
	incomplete := tt.Schedule.Incomplete(asOfKey)
	if len(incomplete) == 0 {
		return &timetable.Result{Schedule: tt.Schedule}, nil
	}

	oracle := s.oracle
	if oracle != nil && reflection != "" {
		oracle = reflectionOracle{inner: s.oracle, reflection: reflection}
	}

	result := timetable.Redistribute(ctx, tt.Schedule, incomplete, asOfKey, tt.HorizonEnd(), oracle, timetable.DefaultConfig())

	tt.Schedule = result.Schedule
	tt.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveTimetable(ctx, *tt); err != nil {
		return nil, fmt.Errorf("save timetable: %w", err)
	}

	s.logger.Infow("sessions redistributed",
		"user_id", userID,
		"timetable_id", tt.ID,
		"placed", len(result.Placed),
		"unplaced", len(result.Unplaced),
		"used_fallback", result.UsedFallback,
	)
	return &result, nil
}
