package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// InventoryRepository is the persistence port for receipts and the
// append-only movement ledger.
type InventoryRepository interface {
	CreateReceipt(ctx context.Context, receipt *entity.InventoryReceipt) error
	ListReceipts(ctx context.Context, userID string, start, end *time.Time) ([]entity.InventoryReceipt, error)

	// SumReceiptCost totals receipt costs (with the unit-cost fallback applied
	// store-side) over an inclusive date window.
	SumReceiptCost(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)

	CreateMovement(ctx context.Context, movement *entity.InventoryMovement) error

	// ListMovements returns ledger entries for the user, optionally filtered
	// by movement type (empty string = all types).
	ListMovements(ctx context.Context, userID, movementType string) ([]entity.InventoryMovement, error)
}
