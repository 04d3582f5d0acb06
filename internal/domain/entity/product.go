package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the mutable aggregate for one stocked item. Name is the natural
// key: sales, receipts and movements correlate to it by normalized-name
// matching, not by foreign key. CurrentStock is a denormalized running
// counter maintained on every sale and receipt; the movement ledger is the
// source of truth and the reconciler detects drift between the two.
type Product struct {
	ID         string
	UserID     string
	BusinessID string
	Name       string

	CurrentStock decimal.Decimal
	SellingPrice decimal.Decimal

	LastSaleDate      *time.Time
	MonthlySalesCount int // sales recorded this calendar month

	CreatedAt time.Time
	UpdatedAt time.Time
}
