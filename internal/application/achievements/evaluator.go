// Package achievements implements the batch unlock evaluator. State machine
// per (user, achievement): locked -> unlocked, one-way, at most one unlock
// row per pair.
package achievements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

// progressSnapshot is stored on the unlock row: the aggregate values the
// criterion saw at unlock time.
type progressSnapshot struct {
	SalesCount       int             `json:"sales_count,omitempty"`
	AmountTotal      decimal.Decimal `json:"amount_total,omitempty"`
	DistinctProducts int             `json:"distinct_products,omitempty"`
}

// Evaluator runs unlock checks for every user with a business profile.
// A criterion failure for one achievement or user is logged and skipped; it
// never aborts the rest of the batch.
type Evaluator struct {
	businesses   repository.BusinessRepository
	achievements repository.AchievementRepository
	sales        repository.SaleRepository
	reminders    repository.ReminderRepository
	log          *logger.Logger
}

// NewEvaluator builds the evaluator.
func NewEvaluator(
	businesses repository.BusinessRepository,
	achievements repository.AchievementRepository,
	sales repository.SaleRepository,
	reminders repository.ReminderRepository,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{
		businesses:   businesses,
		achievements: achievements,
		sales:        sales,
		reminders:    reminders,
		log:          log,
	}
}

// RunAll evaluates every user with a business profile. Per-user failures are
// isolated; RunAll only fails when the user list itself cannot be fetched.
func (e *Evaluator) RunAll(ctx context.Context) error {
	businesses, err := e.businesses.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("achievements: list businesses: %w", err)
	}
	for _, b := range businesses {
		if _, err := e.EvaluateUser(ctx, b.UserID); err != nil {
			e.log.Error().Err(err).Str("user_id", b.UserID).Msg("achievement evaluation failed for user")
		}
	}
	return nil
}

// EvaluateUser tests every not-yet-unlocked definition against fresh
// aggregates and returns the codes unlocked in this run. Running twice in
// a row unlocks nothing the second time.
func (e *Evaluator) EvaluateUser(ctx context.Context, userID string) ([]string, error) {
	defs, err := e.achievements.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("achievements: list definitions: %w", err)
	}
	unlocks, err := e.achievements.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievements: list unlocks: %w", err)
	}
	unlocked := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.Code] = true
	}

	var newCodes []string
	for _, def := range defs {
		if unlocked[def.Code] {
			continue
		}
		met, progress, err := e.evaluate(ctx, userID, def.Criteria)
		if err != nil {
			// isolated failure domain: log and move to the next achievement
			e.log.Error().Err(err).Str("user_id", userID).Str("code", def.Code).Msg("criterion evaluation failed")
			continue
		}
		if !met {
			continue
		}
		if err := e.unlock(ctx, userID, def, progress); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue // a concurrent run got there first; not an error
			}
			e.log.Error().Err(err).Str("user_id", userID).Str("code", def.Code).Msg("unlock insert failed")
			continue
		}
		newCodes = append(newCodes, def.Code)
	}
	return newCodes, nil
}

// ListForUser pairs every definition with the user's unlock state.
func (e *Evaluator) ListForUser(ctx context.Context, userID string) ([]dto.AchievementDTO, error) {
	defs, err := e.achievements.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := e.achievements.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]entity.AchievementUnlock, len(unlocks))
	for _, u := range unlocks {
		byCode[u.Code] = u
	}
	out := make([]dto.AchievementDTO, 0, len(defs))
	for _, d := range defs {
		item := dto.AchievementDTO{
			Code:        d.Code,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
		}
		if u, ok := byCode[d.Code]; ok {
			item.Unlocked = true
			at := u.UnlockedAt
			item.UnlockedAt = &at
		}
		out = append(out, item)
	}
	return out, nil
}

func (e *Evaluator) evaluate(ctx context.Context, userID string, c entity.AchievementCriteria) (bool, progressSnapshot, error) {
	var snap progressSnapshot
	switch c.Type {
	case entity.CriterionFirstSale:
		count, err := e.sales.Count(ctx, userID)
		if err != nil {
			return false, snap, err
		}
		snap.SalesCount = count
		return count > 0, snap, nil

	case entity.CriterionCountThreshold:
		count, err := e.sales.Count(ctx, userID)
		if err != nil {
			return false, snap, err
		}
		snap.SalesCount = count
		return count >= c.Threshold, snap, nil

	case entity.CriterionAmountThreshold:
		var since *time.Time
		if c.WindowDays > 0 {
			t := time.Now().AddDate(0, 0, -c.WindowDays)
			since = &t
		}
		total, err := e.sales.SumEffectiveSince(ctx, userID, since)
		if err != nil {
			return false, snap, err
		}
		snap.AmountTotal = total
		return total.GreaterThanOrEqual(c.Amount), snap, nil

	case entity.CriterionTimeWindow:
		since := time.Now().AddDate(0, 0, -c.WindowDays)
		count, err := e.sales.CountSince(ctx, userID, since)
		if err != nil {
			return false, snap, err
		}
		snap.SalesCount = count
		return count >= c.Threshold, snap, nil

	case entity.CriterionVariety:
		count, err := e.sales.DistinctProducts(ctx, userID)
		if err != nil {
			return false, snap, err
		}
		snap.DistinctProducts = count
		return count >= c.Threshold, snap, nil

	default:
		return false, snap, fmt.Errorf("unknown criterion type %q", c.Type)
	}
}

// unlock inserts the unlock row and drops a one-off insight notification.
// The insert is guarded twice: the unlock set was checked first, and the
// store's unique (user, code) constraint backstops concurrent runs.
func (e *Evaluator) unlock(ctx context.Context, userID string, def entity.AchievementDefinition, snap progressSnapshot) error {
	progress, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	now := time.Now()
	if err := e.achievements.CreateUnlock(ctx, &entity.AchievementUnlock{
		ID:         uuid.New().String(),
		UserID:     userID,
		Code:       def.Code,
		UnlockedAt: now,
		Progress:   progress,
	}); err != nil {
		return err
	}

	// insight notification; failure here must not undo the unlock
	reminder := &entity.Reminder{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       "Achievement unlocked: " + def.Title,
		Description: def.Description,
		DueAt:       now,
		Priority:    entity.ReminderPriorityLow,
		Category:    "achievement",
		Recurrence:  entity.RecurrenceNone,
		CreatedAt:   now,
	}
	if err := e.reminders.Create(ctx, reminder); err != nil {
		e.log.Warn().Err(err).Str("code", def.Code).Msg("unlock notification insert failed")
	}
	e.log.Info().Str("user_id", userID).Str("code", def.Code).Msg("achievement unlocked")
	return nil
}
