package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordExpenseRequest records an outgoing-money entry.
type RecordExpenseRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     *time.Time      `json:"date,omitempty"` // default: now
}

// ExpenseResponse is the read model for expenses.
type ExpenseResponse struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
}

// ExpenseListResponse bundles expenses with their window total.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total"`
}
