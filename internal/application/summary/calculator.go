// Package summary computes period financial summaries (revenue, cost,
// expenses, credit, profit) and the qualitative insight bands over them.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/ledger"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/pkg/logger"
)

// partialOutstandingFactor is the fixed 50%-outstanding heuristic for
// partial-payment sales. A placeholder until a real remaining-balance
// ledger exists; isolated here so one edit replaces it.
var partialOutstandingFactor = decimal.NewFromFloat(0.5)

// Calculator computes summaries for arbitrary inclusive date windows.
// Stateless between calls; a refresh-bus signal simply means "call again".
type Calculator struct {
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	expenses  repository.ExpenseRepository
	snapshots repository.SnapshotRepository
	log       *logger.Logger
}

// NewCalculator builds the calculator.
func NewCalculator(
	sales repository.SaleRepository,
	inventory repository.InventoryRepository,
	expenses repository.ExpenseRepository,
	snapshots repository.SnapshotRepository,
	log *logger.Logger,
) *Calculator {
	return &Calculator{sales: sales, inventory: inventory, expenses: expenses, snapshots: snapshots, log: log}
}

// Summarize computes the window's figures. Three queries run in parallel
// (sales, receipt cost, expense sum); results combine only after all have
// resolved, and one failed leg fails the whole summary with ErrPartialData.
// Empty inputs produce an all-zero summary, never an error.
func (c *Calculator) Summarize(ctx context.Context, userID string, start, end time.Time) (*dto.PeriodSummaryDTO, error) {
	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}

	salesCh := make(chan salesResult, 1)
	costCh := make(chan sumResult, 1)
	expenseCh := make(chan sumResult, 1)

	go func() {
		rows, err := c.sales.List(ctx, userID, repository.SaleFilter{StartDate: &start, EndDate: &end})
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		total, err := c.inventory.SumReceiptCost(ctx, userID, start, end)
		costCh <- sumResult{total, err}
	}()
	go func() {
		total, err := c.expenses.SumAmount(ctx, userID, start, end)
		expenseCh <- sumResult{total, err}
	}()

	sales := <-salesCh
	cost := <-costCh
	expenses := <-expenseCh

	if err := firstError(sales.err, cost.err, expenses.err); err != nil {
		return nil, fmt.Errorf("summary %s..%s: %w: %w",
			start.Format("2006-01-02"), end.Format("2006-01-02"), domain.ErrPartialData, err)
	}

	out := Compute(sales.rows, cost.total, expenses.total)
	out.StartDate = start.Format("2006-01-02")
	out.EndDate = end.Format("2006-01-02")

	c.snapshotPeriod(ctx, userID, out)
	return out, nil
}

// Compute folds the already-fetched inputs into a summary.
// Revenue goes through the shared effective-amount reducer, so a reversed
// sale contributes exactly zero everywhere.
func Compute(sales []entity.Sale, cost, expenses decimal.Decimal) *dto.PeriodSummaryDTO {
	revenue := ledger.SumEffectiveAmount(sales)

	credit := decimal.Zero
	moneyOwed := decimal.Zero
	for _, s := range sales {
		credit = credit.Add(s.CreditOutstanding())
		if s.PartialPayment && !s.Reversed {
			moneyOwed = moneyOwed.Add(s.EffectiveAmount().Mul(partialOutstandingFactor))
		}
	}

	misc := decimal.Zero // reserved term
	profit := revenue.Sub(cost).Sub(expenses).Sub(misc)

	marginPct := ratioPct(profit, revenue)
	creditRatio := ratioPct(credit, revenue)
	costRatio := ratioPct(cost, revenue)

	return &dto.PeriodSummaryDTO{
		Revenue:     revenue.Round(2),
		Cost:        cost.Round(2),
		Expenses:    expenses.Round(2),
		Credit:      credit.Round(2),
		MoneyOwed:   moneyOwed.Round(2),
		Misc:        misc.Round(2),
		Profit:      profit.Round(2),
		MarginPct:   marginPct,
		CreditRatio: creditRatio,
		CostRatio:   costRatio,
		Insights:    buildInsights(marginPct, creditRatio, costRatio, revenue),
	}
}

// snapshotPeriod upserts the client-value ratio for the window. Best effort:
// the summary itself already succeeded, a snapshot failure is logged only.
func (c *Calculator) snapshotPeriod(ctx context.Context, userID string, s *dto.PeriodSummaryDTO) {
	if c.snapshots == nil {
		return
	}
	period := s.StartDate + ".." + s.EndDate
	ratio := decimal.Zero
	if s.Revenue.IsPositive() {
		ratio = s.Credit.Div(s.Revenue).Round(4)
	}
	if err := c.snapshots.UpsertPeriodSnapshot(ctx, userID, period, ratio); err != nil {
		c.log.Warn().Err(err).Str("period", period).Msg("period snapshot upsert failed")
	}
}

// ratioPct returns num/den as a percentage rounded to 2dp; zero when the
// denominator is not positive (an empty window yields zeros, never NaN).
func ratioPct(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den).Mul(decimal.NewFromInt(100)).Round(2)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
