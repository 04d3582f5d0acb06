package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// ProductRepository is the persistence port for the product aggregate.
// CurrentStock mutations go through the dedicated methods so the counter is
// only ever touched alongside a ledger write.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	List(ctx context.Context, userID string) ([]entity.Product, error)

	// AdjustStock adds delta (signed) to the running stock counter.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) error

	// SetStock overwrites the counter; used by the reconciler when repairing
	// drift against the movement ledger.
	SetStock(ctx context.Context, id string, quantity decimal.Decimal) error

	// RecordSaleStats decrements stock and bumps the sale bookkeeping fields
	// (last sale date, monthly counter) in one statement.
	RecordSaleStats(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error
}
