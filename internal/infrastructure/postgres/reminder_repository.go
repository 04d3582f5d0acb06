package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

const reminderColumns = `id, user_id, title, description, due_at, priority, category,
	recurrence, completed, notified, created_at`

// ReminderRepo implements ReminderRepository over PostgreSQL (pool or tx).
type ReminderRepo struct {
	q Querier
}

// NewReminderRepository builds the adapter.
func NewReminderRepository(q Querier) *ReminderRepo {
	return &ReminderRepo{q: q}
}

// Create persists a reminder.
func (r *ReminderRepo) Create(ctx context.Context, rm *entity.Reminder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rm.ID, rm.UserID, rm.Title, rm.Description, rm.DueAt, rm.Priority, rm.Category,
		rm.Recurrence, rm.Completed, rm.Notified, rm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

// List returns the user's reminders ordered by due date ascending.
func (r *ReminderRepo) List(ctx context.Context, userID string, includeCompleted bool) ([]entity.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = $1`
	if !includeCompleted {
		query += ` AND completed = FALSE`
	}
	query += ` ORDER BY due_at`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var list []entity.Reminder
	for rows.Next() {
		var rm entity.Reminder
		if err := rows.Scan(
			&rm.ID, &rm.UserID, &rm.Title, &rm.Description, &rm.DueAt, &rm.Priority, &rm.Category,
			&rm.Recurrence, &rm.Completed, &rm.Notified, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		list = append(list, rm)
	}
	return list, rows.Err()
}

// SetCompleted toggles the completion flag.
func (r *ReminderRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE reminders SET completed = $3 WHERE user_id = $1 AND id = $2`,
		userID, id, completed,
	)
	if err != nil {
		return fmt.Errorf("set reminder completed: %w", err)
	}
	return nil
}

// ListDue returns incomplete, not-yet-notified reminders due at or before
// the given time, across all users.
func (r *ReminderRepo) ListDue(ctx context.Context, before time.Time) ([]entity.Reminder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+reminderColumns+` FROM reminders
		WHERE completed = FALSE AND notified = FALSE AND due_at <= $1
		ORDER BY due_at`,
		before,
	)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	var list []entity.Reminder
	for rows.Next() {
		var rm entity.Reminder
		if err := rows.Scan(
			&rm.ID, &rm.UserID, &rm.Title, &rm.Description, &rm.DueAt, &rm.Priority, &rm.Category,
			&rm.Recurrence, &rm.Completed, &rm.Notified, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan due reminder: %w", err)
		}
		list = append(list, rm)
	}
	return list, rows.Err()
}

// MarkNotified flips the notified flag. Idempotent.
func (r *ReminderRepo) MarkNotified(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE reminders SET notified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reminder notified: %w", err)
	}
	return nil
}
