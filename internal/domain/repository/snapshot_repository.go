package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SnapshotRepository persists derived period figures that other systems read
// without recomputing. Currently only the client-value ratio (credit
// outstanding over revenue) is snapshotted, keyed by user and period label.
type SnapshotRepository interface {
	UpsertPeriodSnapshot(ctx context.Context, userID, period string, clientValueRatio decimal.Decimal) error
}
