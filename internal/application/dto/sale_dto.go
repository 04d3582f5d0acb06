package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body of POST /api/sales.
type RecordSaleRequest struct {
	ProductName       string          `json:"product_name"`
	Amount            decimal.Decimal `json:"amount"`
	Quantity          decimal.Decimal `json:"quantity"`
	PaymentMethod     string          `json:"payment_method"` // cash | credit | momo
	OutstandingCredit decimal.Decimal `json:"outstanding_credit,omitempty"`
	PartialPayment    bool            `json:"partial_payment,omitempty"`
	PurchaseDate      *time.Time      `json:"purchase_date,omitempty"` // default: now
}

// ReverseSaleRequest body of POST /api/sales/:id/reverse.
type ReverseSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse public view of one ledger row.
type SaleResponse struct {
	ID                string          `json:"id"`
	ProductName       string          `json:"product_name"`
	Amount            decimal.Decimal `json:"amount"`
	Quantity          decimal.Decimal `json:"quantity"`
	EffectiveAmount   decimal.Decimal `json:"effective_amount"`
	EffectiveQuantity decimal.Decimal `json:"effective_quantity"`
	PaymentMethod     string          `json:"payment_method"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Reversed          bool            `json:"reversed"`
	ReversalReason    string          `json:"reversal_reason,omitempty"`
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"`
	PartialPayment    bool            `json:"partial_payment"`
}

// SaleListResponse rows plus totals computed with the shared reducers, so
// every consumer sees the same revenue definition.
type SaleListResponse struct {
	Sales         []SaleResponse  `json:"sales"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
