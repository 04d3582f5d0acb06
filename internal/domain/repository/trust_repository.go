package repository

import "context"

// TrustRepository invokes the database-side trust scoring procedure. The
// engine treats the rule as a black box returning 0-100.
type TrustRepository interface {
	// ComputeScore runs the scoring procedure for a business. Returns
	// domain.ErrNotFound when the business has no score row yet.
	ComputeScore(ctx context.Context, businessID string) (int, error)

	// EnsureInitialized creates the score row on first use (lazy init).
	// Idempotent.
	EnsureInitialized(ctx context.Context, businessID string) error
}
