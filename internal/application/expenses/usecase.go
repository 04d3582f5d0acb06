// Package expenses records and lists outgoing-money entries. Expenses are
// immutable; corrections are new entries.
package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

// Publisher signals that derived metrics went stale.
type Publisher interface {
	Publish()
}

// UseCase handles expense writes and reads.
type UseCase struct {
	expenses repository.ExpenseRepository
	bus      Publisher
}

func NewUseCase(expenses repository.ExpenseRepository, bus Publisher) *UseCase {
	return &UseCase{expenses: expenses, bus: bus}
}

// Record persists an expense and notifies the refresh bus.
func (uc *UseCase) Record(ctx context.Context, userID string, in dto.RecordExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	date := time.Now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	exp := &entity.Expense{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  in.Category,
		Amount:    in.Amount,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.expenses.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("record expense: %w", err)
	}
	if uc.bus != nil {
		uc.bus.Publish()
	}
	return toExpenseResponse(*exp), nil
}

// List returns expenses in the window plus their total.
func (uc *UseCase) List(ctx context.Context, userID string, start, end *time.Time) (*dto.ExpenseListResponse, error) {
	rows, err := uc.expenses.List(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := &dto.ExpenseListResponse{
		Expenses: make([]dto.ExpenseResponse, 0, len(rows)),
		Total:    decimal.Zero,
	}
	for _, e := range rows {
		out.Expenses = append(out.Expenses, *toExpenseResponse(e))
		out.Total = out.Total.Add(e.Amount)
	}
	return out, nil
}

func toExpenseResponse(e entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:       e.ID,
		Category: e.Category,
		Amount:   e.Amount,
		Date:     e.Date,
	}
}
