package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an immutable outgoing-money record.
type Expense struct {
	ID       string
	UserID   string
	Category string
	Amount   decimal.Decimal
	Date     time.Time

	CreatedAt time.Time
}
