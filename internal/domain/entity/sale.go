package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods recorded at point of sale.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
	PaymentMomo   = "momo" // mobile money
)

// Sale is an immutable-once-settled ledger record. History is never deleted:
// a reversal stamps Reversed/ReversedAt/ReversalReason and accumulates the
// netted-out portion in ReversedAmount/ReversedQuantity.
type Sale struct {
	ID          string
	UserID      string
	BusinessID  string
	ProductName string

	Amount        decimal.Decimal
	Quantity      decimal.Decimal
	PaymentMethod string
	PurchaseDate  time.Time

	Reversed       bool
	ReversedAt     *time.Time
	ReversalReason string

	// Netting accumulators for partial reversals. Invariant: both are
	// non-negative and never exceed Amount/Quantity. The API only writes
	// full reversals (MarkReversed); these columns are populated by external
	// data corrections and are read-only here.
	ReversedAmount   decimal.Decimal
	ReversedQuantity decimal.Decimal

	// Credit bookkeeping. OutstandingCredit zero with PaymentMethod credit
	// means "unset": the effective amount stands in for the open balance.
	OutstandingCredit decimal.Decimal
	PartialPayment    bool

	CreatedAt time.Time
}

// EffectiveAmount is the amount that still counts toward forward-looking
// aggregates: zero when fully reversed, the netted figure otherwise.
func (s Sale) EffectiveAmount() decimal.Decimal {
	if s.Reversed {
		return decimal.Zero
	}
	eff := s.Amount.Sub(s.ReversedAmount)
	if eff.IsNegative() {
		return decimal.Zero
	}
	return eff
}

// EffectiveQuantity nets out reversed units the same way.
func (s Sale) EffectiveQuantity() decimal.Decimal {
	if s.Reversed {
		return decimal.Zero
	}
	eff := s.Quantity.Sub(s.ReversedQuantity)
	if eff.IsNegative() {
		return decimal.Zero
	}
	return eff
}

// CreditOutstanding returns the open balance for a credit sale: the recorded
// outstanding amount, or the effective amount when none was recorded.
// Non-credit and reversed sales owe nothing.
func (s Sale) CreditOutstanding() decimal.Decimal {
	if s.Reversed || s.PaymentMethod != PaymentCredit {
		return decimal.Zero
	}
	if s.OutstandingCredit.IsPositive() {
		return s.OutstandingCredit
	}
	return s.EffectiveAmount()
}
