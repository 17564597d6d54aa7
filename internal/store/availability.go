package store

import (
	"context"
	"fmt"

	"github.com/abhisek/studyplan/internal/models"
)

// ReplaceAvailability swaps the user's weekly availability template for
// the given slots in one transaction.
func (s *Store) ReplaceAvailability(ctx context.Context, userID string, slots []models.AvailabilitySlot) error {
	return s.RunInTx(ctx, func(tx *Store) error {
		if _, err := tx.exec(ctx,
			`DELETE FROM availability_slots WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("clear availability (user_id: %s): %w", userID, err)
		}

		for _, slot := range slots {
			query, args, err := tx.sq.Insert("availability_slots").
				Columns("id", "user_id", "weekday", "daily", "enabled", "start_time", "end_time").
				Values(slot.ID, userID, int(slot.Weekday), slot.Daily, slot.Enabled, slot.StartTime, slot.EndTime).
				ToSql()
			if err != nil {
				return fmt.Errorf("build SQL query (slot: %s): %w", slot.ID, err)
			}
			if _, err := tx.exec(ctx, query, args...); err != nil {
				return fmt.Errorf("insert availability slot (id: %s): %w", slot.ID, err)
			}
		}
		return nil
	})
}

// ListAvailability returns the user's availability template, daily
// slots first then by weekday and start time.
func (s *Store) ListAvailability(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := s.selectAll(ctx, &slots, `
		SELECT id, user_id, weekday, daily, enabled, start_time, end_time
		FROM availability_slots
		WHERE user_id = ?
		ORDER BY daily DESC, weekday, start_time
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list availability (user_id: %s): %w", userID, err)
	}
	return slots, nil
}
