package store

import (
	"context"
	"fmt"

	"github.com/abhisek/studyplan/internal/mastery"
)

// SaveProgress upserts the spaced repetition record for a topic.
func (s *Store) SaveProgress(ctx context.Context, userID string, p mastery.TopicProgress) error {
	query, args, err := s.sq.Insert("topic_progress").
		Columns("user_id", "topic_id", "total_sessions", "successful_sessions", "tier", "last_reviewed_at", "next_review_date").
		Values(userID, p.TopicID, p.TotalSessions, p.SuccessfulSessions, string(p.Tier), p.LastReviewedAt, p.NextReviewDate).
		Suffix(`ON CONFLICT (user_id, topic_id) DO UPDATE SET
			total_sessions = excluded.total_sessions,
			successful_sessions = excluded.successful_sessions,
			tier = excluded.tier,
			last_reviewed_at = excluded.last_reviewed_at,
			next_review_date = excluded.next_review_date`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (topic_id: %s): %w", p.TopicID, err)
	}

	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress (topic_id: %s): %w", p.TopicID, err)
	}
	return nil
}

// GetProgress loads one topic's record. Returns sql.ErrNoRows wrapped
// when the topic has never been reviewed; check with IsNotFound.
func (s *Store) GetProgress(ctx context.Context, userID, topicID string) (*mastery.TopicProgress, error) {
	var p mastery.TopicProgress
	err := s.get(ctx, &p, `
		SELECT topic_id, total_sessions, successful_sessions, tier, last_reviewed_at, next_review_date
		FROM topic_progress
		WHERE user_id = ? AND topic_id = ?
	`, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("get progress (topic_id: %s): %w", topicID, err)
	}
	return &p, nil
}

// ListProgress returns all review records for a user.
func (s *Store) ListProgress(ctx context.Context, userID string) ([]mastery.TopicProgress, error) {
	var records []mastery.TopicProgress
	err := s.selectAll(ctx, &records, `
		SELECT topic_id, total_sessions, successful_sessions, tier, last_reviewed_at, next_review_date
		FROM topic_progress
		WHERE user_id = ?
		ORDER BY next_review_date
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress (user_id: %s): %w", userID, err)
	}
	return records, nil
}
