package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.TrustRepository = (*TrustRepo)(nil)

// TrustRepo invokes the database-side trust scoring procedures. The rule
// itself lives in SQL and is opaque to the application.
type TrustRepo struct {
	q Querier
}

// NewTrustRepository builds the adapter.
func NewTrustRepository(q Querier) *TrustRepo {
	return &TrustRepo{q: q}
}

// ComputeScore runs the scoring procedure. The procedure raises "no score
// row" as a NULL result, mapped here to domain.ErrNotFound for lazy init.
func (r *TrustRepo) ComputeScore(ctx context.Context, businessID string) (int, error) {
	var score *int
	err := r.q.QueryRow(ctx, `SELECT compute_trust_score($1)`, businessID).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("compute trust score: %w", err)
	}
	if score == nil {
		return 0, domain.ErrNotFound
	}
	return *score, nil
}

// EnsureInitialized creates the score row on first use. The procedure is
// idempotent (INSERT ... ON CONFLICT DO NOTHING on its side).
func (r *TrustRepo) EnsureInitialized(ctx context.Context, businessID string) error {
	if _, err := r.q.Exec(ctx, `SELECT init_trust_score($1)`, businessID); err != nil {
		return fmt.Errorf("init trust score: %w", err)
	}
	return nil
}
