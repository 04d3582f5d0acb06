package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implements ExpenseRepository over PostgreSQL (pool or tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository builds the adapter.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persists an expense.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO expenses (id, user_id, category, amount, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Category, e.Amount, e.Date, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List returns expenses, optionally bounded by an inclusive window, newest first.
func (r *ExpenseRepo) List(ctx context.Context, userID string, start, end *time.Time) ([]entity.Expense, error) {
	query := `
		SELECT id, user_id, category, amount, expense_date, created_at
		FROM expenses WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY expense_date DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// SumAmount totals expenses over an inclusive window. COALESCE keeps empty
// windows at zero.
func (r *ExpenseRepo) SumAmount(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date <= $3`,
		userID, start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
