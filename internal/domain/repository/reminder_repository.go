package repository

import (
	"context"
	"time"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// ReminderRepository is the persistence port for reminders and the
// engine-generated insight notifications.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	List(ctx context.Context, userID string, includeCompleted bool) ([]entity.Reminder, error)
	SetCompleted(ctx context.Context, userID, id string, completed bool) error

	// ListDue returns incomplete, not-yet-notified reminders due at or before
	// the given time, across all users (the due-scan runs process-wide).
	ListDue(ctx context.Context, before time.Time) ([]entity.Reminder, error)

	// MarkNotified flips the notified flag. Idempotent.
	MarkNotified(ctx context.Context, id string) error
}
