package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// SaleFilter narrows a sales query. Zero-value fields are ignored.
type SaleFilter struct {
	BusinessID      string
	StartDate       *time.Time // inclusive
	EndDate         *time.Time // inclusive
	IncludeReversed bool
	Limit           int
}

// SaleRepository is the persistence port for the sales ledger plus the
// aggregate queries the achievement evaluator needs. Implementations are
// expected to order List results by purchase date descending and to scope
// every query to the given user.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, userID, id string) (*entity.Sale, error)
	List(ctx context.Context, userID string, filter SaleFilter) ([]entity.Sale, error)

	// MarkReversed stamps the reversal fields. The row itself stays; a
	// reversal is logically a linked event, never a delete.
	MarkReversed(ctx context.Context, userID, id string, at time.Time, reason string) error

	// Aggregate queries over non-reversed sales.
	Count(ctx context.Context, userID string) (int, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	SumEffectiveSince(ctx context.Context, userID string, since *time.Time) (decimal.Decimal, error)
	DistinctProducts(ctx context.Context, userID string) (int, error)
}
