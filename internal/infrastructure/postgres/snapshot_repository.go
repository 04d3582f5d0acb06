package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implements SnapshotRepository over PostgreSQL.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository builds the adapter.
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// UpsertPeriodSnapshot writes the client-value ratio for (user, period),
// overwriting any previous value for the same key.
func (r *SnapshotRepo) UpsertPeriodSnapshot(ctx context.Context, userID, period string, clientValueRatio decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO period_snapshots (user_id, period, client_value_ratio, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, period)
		DO UPDATE SET client_value_ratio = EXCLUDED.client_value_ratio, updated_at = now()`,
		userID, period, clientValueRatio,
	)
	if err != nil {
		return fmt.Errorf("upsert period snapshot: %w", err)
	}
	return nil
}
