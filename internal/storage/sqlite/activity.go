package sqlite

import (
	"context"
	"fmt"

	"splitledger/internal/models"
)

// RecordActivity appends one entry to a group's activity feed.
func (s *SQLiteStore) RecordActivity(ctx context.Context, activity *models.Activity) error {
	query := `
		INSERT INTO activities (id, group_id, actor, action, description, amount_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		activity.ID, activity.GroupID, activity.Actor, activity.Action,
		activity.Description, int64(activity.Amount), activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListActivityByGroup retrieves a group's activity feed, newest first.
func (s *SQLiteStore) ListActivityByGroup(ctx context.Context, groupID string, limit int) ([]*models.Activity, error) {
	query := `
		SELECT id, group_id, actor, action, description, amount_cents, created_at
		FROM activities WHERE group_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		var amount int64
		if err := rows.Scan(&a.ID, &a.GroupID, &a.Actor, &a.Action,
			&a.Description, &amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Amount = models.Cents(amount)
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}
