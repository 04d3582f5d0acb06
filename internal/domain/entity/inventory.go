package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory movement types.
const (
	MovementReceived = "received"
	MovementSold     = "sold"
	MovementDamaged  = "damaged"
	MovementExpired  = "expired"
	MovementAdjusted = "adjusted"
)

// InventoryReceipt is a purchase-in event. Immutable once created.
// TotalCost may be zero when only the unit cost was captured; readers fall
// back to UnitCost * QuantityReceived.
type InventoryReceipt struct {
	ID          string
	UserID      string
	ProductName string

	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal

	ReceivedAt time.Time
	CreatedAt  time.Time
}

// EffectiveTotalCost returns the recorded total, or unit cost times quantity
// when the total was not separately captured.
func (r InventoryReceipt) EffectiveTotalCost() decimal.Decimal {
	if r.TotalCost.IsPositive() {
		return r.TotalCost
	}
	return r.UnitCost.Mul(r.QuantityReceived)
}

// InventoryMovement is one entry in the append-only stock-change ledger.
// Quantity is signed: positive for received/adjust-up, negative for
// sold/damaged/expired/adjust-down.
type InventoryMovement struct {
	ID          string
	UserID      string
	ProductName string

	Type      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Note      string

	OccurredAt time.Time
	CreatedAt  time.Time
}
