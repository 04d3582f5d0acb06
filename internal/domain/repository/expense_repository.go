package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

// ExpenseRepository is the persistence port for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, userID string, start, end *time.Time) ([]entity.Expense, error)
	SumAmount(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)
}
