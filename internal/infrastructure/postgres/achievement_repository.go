package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.AchievementRepository = (*AchievementRepo)(nil)

// AchievementRepo implements AchievementRepository over PostgreSQL.
// achievement_unlocks carries a UNIQUE (user_id, code) constraint; together
// with the evaluator's check-first guard it makes unlocking idempotent.
type AchievementRepo struct {
	q Querier
}

// NewAchievementRepository builds the adapter.
func NewAchievementRepository(q Querier) *AchievementRepo {
	return &AchievementRepo{q: q}
}

// ListDefinitions returns every achievement definition. Criteria is stored
// as JSONB and decoded into the typed predicate.
func (r *AchievementRepo) ListDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, title, description, icon, criteria
		FROM achievement_definitions ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list achievement definitions: %w", err)
	}
	defer rows.Close()

	var list []entity.AchievementDefinition
	for rows.Next() {
		var d entity.AchievementDefinition
		var criteria []byte
		if err := rows.Scan(&d.Code, &d.Title, &d.Description, &d.Icon, &criteria); err != nil {
			return nil, fmt.Errorf("scan achievement definition: %w", err)
		}
		if err := json.Unmarshal(criteria, &d.Criteria); err != nil {
			return nil, fmt.Errorf("decode criteria for %s: %w", d.Code, err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListUnlocks returns the user's unlock rows.
func (r *AchievementRepo) ListUnlocks(ctx context.Context, userID string) ([]entity.AchievementUnlock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, code, unlocked_at, progress
		FROM achievement_unlocks WHERE user_id = $1 ORDER BY unlocked_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var list []entity.AchievementUnlock
	for rows.Next() {
		var u entity.AchievementUnlock
		if err := rows.Scan(&u.ID, &u.UserID, &u.Code, &u.UnlockedAt, &u.Progress); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CreateUnlock inserts one unlock row; a duplicate (user, code) maps to
// domain.ErrDuplicate.
func (r *AchievementRepo) CreateUnlock(ctx context.Context, u *entity.AchievementUnlock) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO achievement_unlocks (id, user_id, code, unlocked_at, progress)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.UserID, u.Code, u.UnlockedAt, u.Progress,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unlock: %w", err)
	}
	return nil
}
