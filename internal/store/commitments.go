package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/models"
	"github.com/abhisek/studyplan/internal/recurrence"
)

// CreateSubject inserts a subject.
func (s *Store) CreateSubject(ctx context.Context, sub models.Subject) error {
	query, args, err := s.sq.Insert("subjects").
		Columns("id", "user_id", "name").
		Values(sub.ID, sub.UserID, sub.Name).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (subject: %s): %w", sub.Name, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create subject (name: %s): %w", sub.Name, err)
	}
	return nil
}

// ListSubjects returns the user's subjects ordered by name.
func (s *Store) ListSubjects(ctx context.Context, userID string) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.selectAll(ctx, &subjects,
		`SELECT id, user_id, name FROM subjects WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subjects (user_id: %s): %w", userID, err)
	}
	return subjects, nil
}

// DeleteSubject removes a subject; its topics cascade.
func (s *Store) DeleteSubject(ctx context.Context, userID, id string) error {
	if _, err := s.exec(ctx,
		`DELETE FROM subjects WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete subject (id: %s): %w", id, err)
	}
	return nil
}

// CreateTopic inserts a topic under a subject.
func (s *Store) CreateTopic(ctx context.Context, t models.Topic) error {
	query, args, err := s.sq.Insert("topics").
		Columns("id", "user_id", "subject_id", "name", "confidence").
		Values(t.ID, t.UserID, t.SubjectID, t.Name, t.Confidence).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (topic: %s): %w", t.Name, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create topic (name: %s): %w", t.Name, err)
	}
	return nil
}

// UpdateTopicConfidence sets the self-rated confidence for a topic.
func (s *Store) UpdateTopicConfidence(ctx context.Context, userID, id string, confidence int) error {
	query, args, err := s.sq.Update("topics").
		Set("confidence", confidence).
		Where("user_id = ? AND id = ?", userID, id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (topic_id: %s): %w", id, err)
	}

	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update topic confidence (topic_id: %s): %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update topic confidence (topic_id: %s): %w", id, sql.ErrNoRows)
	}
	return nil
}

// ListTopics returns the user's topics with their subject names,
// ordered by subject then topic name.
func (s *Store) ListTopics(ctx context.Context, userID string) ([]models.Topic, error) {
	query := `
		SELECT t.id, t.user_id, t.subject_id, s.name AS subject, t.name, t.confidence
		FROM topics t
		JOIN subjects s ON s.id = t.subject_id
		WHERE t.user_id = ?
		ORDER BY s.name, t.name
	`

	var topics []models.Topic
	if err := s.selectAll(ctx, &topics, query, userID); err != nil {
		return nil, fmt.Errorf("list topics (user_id: %s): %w", userID, err)
	}
	return topics, nil
}

// eventRow is the storage shape of an event; the recurrence rule is
// flattened into freq and until columns.
type eventRow struct {
	ID         string       `db:"id"`
	UserID     string       `db:"user_id"`
	Title      string       `db:"title"`
	Subject    string       `db:"subject"`
	Start      time.Time    `db:"start_time"`
	End        time.Time    `db:"end_time"`
	RecurFreq  string       `db:"recur_freq"`
	RecurUntil sql.NullTime `db:"recur_until"`
}

func (r eventRow) toModel() models.Event {
	e := models.Event{
		ID:      r.ID,
		UserID:  r.UserID,
		Title:   r.Title,
		Subject: r.Subject,
		Start:   r.Start,
		End:     r.End,
		Recurrence: recurrence.Rule{
			Freq: recurrence.Frequency(r.RecurFreq),
		},
	}
	if r.RecurUntil.Valid {
		e.Recurrence.Until = r.RecurUntil.Time
	}
	return e
}

// CreateEvent inserts an event with its recurrence rule.
func (s *Store) CreateEvent(ctx context.Context, e models.Event) error {
	until := sql.NullTime{Time: e.Recurrence.Until, Valid: !e.Recurrence.Until.IsZero()}
	freq := e.Recurrence.Freq
	if freq == "" {
		freq = recurrence.None
	}

	query, args, err := s.sq.Insert("events").
		Columns("id", "user_id", "title", "subject", "start_time", "end_time", "recur_freq", "recur_until").
		Values(e.ID, e.UserID, e.Title, e.Subject, e.Start, e.End, string(freq), until).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (event: %s): %w", e.Title, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create event (title: %s): %w", e.Title, err)
	}
	return nil
}

// ListEvents returns the user's events ordered by start time.
// Recurring events come back as their stored base occurrence.
func (s *Store) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	var rows []eventRow
	err := s.selectAll(ctx, &rows, `
		SELECT id, user_id, title, subject, start_time, end_time, recur_freq, recur_until
		FROM events
		WHERE user_id = ?
		ORDER BY start_time
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list events (user_id: %s): %w", userID, err)
	}

	events := make([]models.Event, len(rows))
	for i, r := range rows {
		events[i] = r.toModel()
	}
	return events, nil
}

// DeleteEvent removes an event and all its future occurrences.
func (s *Store) DeleteEvent(ctx context.Context, userID, id string) error {
	if _, err := s.exec(ctx,
		`DELETE FROM events WHERE user_id = ? AND id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete event (id: %s): %w", id, err)
	}
	return nil
}

// CreateHomework inserts a homework assignment.
func (s *Store) CreateHomework(ctx context.Context, hw models.Homework) error {
	query, args, err := s.sq.Insert("homework").
		Columns("id", "user_id", "title", "subject", "due", "duration_minutes", "completed").
		Values(hw.ID, hw.UserID, hw.Title, hw.Subject, hw.Due, hw.DurationMinutes, hw.Completed).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (homework: %s): %w", hw.Title, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create homework (title: %s): %w", hw.Title, err)
	}
	return nil
}

// ListHomework returns the user's assignments ordered by due date.
// Completed assignments are excluded when pendingOnly is set.
func (s *Store) ListHomework(ctx context.Context, userID string, pendingOnly bool) ([]models.Homework, error) {
	query := `
		SELECT id, user_id, title, subject, due, duration_minutes, completed
		FROM homework
		WHERE user_id = ?
	`
	if pendingOnly {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY due`

	var homework []models.Homework
	if err := s.selectAll(ctx, &homework, query, userID); err != nil {
		return nil, fmt.Errorf("list homework (user_id: %s): %w", userID, err)
	}
	return homework, nil
}

// CompleteHomework marks an assignment done.
func (s *Store) CompleteHomework(ctx context.Context, userID, id string) error {
	res, err := s.exec(ctx,
		`UPDATE homework SET completed = 1 WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("complete homework (id: %s): %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("complete homework (id: %s): %w", id, sql.ErrNoRows)
	}
	return nil
}

// CreateTestDate inserts an upcoming exam.
func (s *Store) CreateTestDate(ctx context.Context, td models.TestDate) error {
	query, args, err := s.sq.Insert("test_dates").
		Columns("id", "user_id", "title", "subject", "test_date").
		Values(td.ID, td.UserID, td.Title, td.Subject, td.Date).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (test: %s): %w", td.Title, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create test date (title: %s): %w", td.Title, err)
	}
	return nil
}

// ListTestDates returns the user's exams ordered by date.
func (s *Store) ListTestDates(ctx context.Context, userID string) ([]models.TestDate, error) {
	var tests []models.TestDate
	err := s.selectAll(ctx, &tests, `
		SELECT id, user_id, title, subject, test_date
		FROM test_dates
		WHERE user_id = ?
		ORDER BY test_date
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list test dates (user_id: %s): %w", userID, err)
	}
	return tests, nil
}

// IsNotFound reports whether err means the row did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
