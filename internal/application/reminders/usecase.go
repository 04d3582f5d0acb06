// Package reminders manages user reminders and the due-notification scan.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

// UseCase reminder CRUD plus the due-scan.
type UseCase struct {
	reminders repository.ReminderRepository
	log       *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(reminders repository.ReminderRepository, log *logger.Logger) *UseCase {
	return &UseCase{reminders: reminders, log: log}
}

// Create validates and stores a reminder.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.ReminderRequest) (*dto.ReminderResponse, error) {
	if in.Title == "" || in.DueAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Priority {
	case entity.ReminderPriorityHigh, entity.ReminderPriorityMedium, entity.ReminderPriorityLow:
	case "":
		in.Priority = entity.ReminderPriorityMedium
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.Recurrence == "" {
		in.Recurrence = entity.RecurrenceNone
	}

	reminder := &entity.Reminder{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt,
		Priority:    in.Priority,
		Category:    in.Category,
		Recurrence:  in.Recurrence,
		CreatedAt:   time.Now(),
	}
	if err := uc.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	resp := toResponse(*reminder)
	return &resp, nil
}

// List returns the user's reminders.
func (uc *UseCase) List(ctx context.Context, userID string, includeCompleted bool) ([]dto.ReminderResponse, error) {
	rows, err := uc.reminders.List(ctx, userID, includeCompleted)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out, nil
}

// SetCompleted toggles the completion flag.
func (uc *UseCase) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	return uc.reminders.SetCompleted(ctx, userID, id, completed)
}

// ScanDue flips the notified flag for reminders due within the approaching
// window and returns them. Each reminder is announced at most once; the
// outbound message transport is an external collaborator.
func (uc *UseCase) ScanDue(ctx context.Context, now time.Time, window time.Duration) ([]entity.Reminder, error) {
	due, err := uc.reminders.ListDue(ctx, now.Add(window))
	if err != nil {
		return nil, fmt.Errorf("reminders: due scan: %w", err)
	}
	notified := make([]entity.Reminder, 0, len(due))
	for _, r := range due {
		if err := uc.reminders.MarkNotified(ctx, r.ID); err != nil {
			uc.log.Error().Err(err).Str("reminder_id", r.ID).Msg("mark notified failed")
			continue
		}
		notified = append(notified, r)
	}
	return notified, nil
}

func toResponse(r entity.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt,
		Priority:    r.Priority,
		Category:    r.Category,
		Recurrence:  r.Recurrence,
		Completed:   r.Completed,
		Notified:    r.Notified,
	}
}
