package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/timetable"
)

// timetableRow stores the schedule as a JSON document. The schedule is
// always read and written whole, so a serialized column beats one row
// per session.
type timetableRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Start     time.Time `db:"start_date"`
	End       time.Time `db:"end_date"`
	Schedule  string    `db:"schedule"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r timetableRow) toModel() (*timetable.Timetable, error) {
	var schedule timetable.Schedule
	if err := json.Unmarshal([]byte(r.Schedule), &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule (timetable_id: %s): %w", r.ID, err)
	}
	return &timetable.Timetable{
		ID:        r.ID,
		UserID:    r.UserID,
		Start:     r.Start,
		End:       r.End,
		Schedule:  schedule,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// SaveTimetable upserts a timetable with its full schedule.
func (s *Store) SaveTimetable(ctx context.Context, tt timetable.Timetable) error {
	encoded, err := json.Marshal(tt.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule (timetable_id: %s): %w", tt.ID, err)
	}

	query, args, err := s.sq.Insert("timetables").
		Columns("id", "user_id", "start_date", "end_date", "schedule", "created_at", "updated_at").
		Values(tt.ID, tt.UserID, tt.Start, tt.End, string(encoded), tt.CreatedAt, tt.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			schedule = excluded.schedule,
			end_date = excluded.end_date,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (timetable_id: %s): %w", tt.ID, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save timetable (timetable_id: %s): %w", tt.ID, err)
	}
	return nil
}

// GetTimetable loads a timetable by ID.
func (s *Store) GetTimetable(ctx context.Context, userID, id string) (*timetable.Timetable, error) {
	var row timetableRow
	err := s.get(ctx, &row, `
		SELECT id, user_id, start_date, end_date, schedule, created_at, updated_at
		FROM timetables
		WHERE user_id = ? AND id = ?
	`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get timetable (id: %s): %w", id, err)
	}
	return row.toModel()
}

// LatestTimetable loads the most recently created timetable for a
// user, or a wrapped sql.ErrNoRows when none exists.
func (s *Store) LatestTimetable(ctx context.Context, userID string) (*timetable.Timetable, error) {
	var row timetableRow
	err := s.get(ctx, &row, `
		SELECT id, user_id, start_date, end_date, schedule, created_at, updated_at
		FROM timetables
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("latest timetable (user_id: %s): %w", userID, err)
	}
	return row.toModel()
}
