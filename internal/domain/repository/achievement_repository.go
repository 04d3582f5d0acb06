package repository

import (
	"context"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// AchievementRepository is the persistence port for achievement definitions
// and unlock rows.
type AchievementRepository interface {
	ListDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error)
	ListUnlocks(ctx context.Context, userID string) ([]entity.AchievementUnlock, error)

	// CreateUnlock inserts one unlock row. Implementations return
	// domain.ErrDuplicate when (user, code) already exists, which the
	// evaluator treats as "already unlocked", not as a failure.
	CreateUnlock(ctx context.Context, unlock *entity.AchievementUnlock) error
}
