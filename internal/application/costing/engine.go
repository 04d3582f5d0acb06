// Package costing derives per-product weighted-average cost and stock
// valuation from receipts, the movement ledger and the product table. The
// three sources are independent and eventually consistent; the engine
// reconciles them under a strict fallback order.
package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/names"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/internal/domain/stock"
)

// Cost sources, in fallback order.
const (
	SourceReceipts     = "receipts"
	SourceMovements    = "movements"
	SourceSellingPrice = "selling_price"
	SourceNone         = "none"
)

// Sales lookback for "recent activity" in the health classification.
const recentSalesLookback = 30 * 24 * time.Hour

// Engine computes the stock report. Read-only; every call recomputes from
// scratch.
type Engine struct {
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	sales     repository.SaleRepository
}

// NewEngine builds the engine.
func NewEngine(
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	sales repository.SaleRepository,
) *Engine {
	return &Engine{products: products, inventory: inventory, sales: sales}
}

// StockReport values the whole inventory at a point in time.
//
// Four queries run in parallel (products, receipts, received movements,
// recent sales); results combine only after all have resolved. If any leg
// fails the whole report fails with ErrPartialData rather than valuing the
// stock from incomplete inputs.
func (e *Engine) StockReport(ctx context.Context, userID string) (*dto.StockReportDTO, error) {
	type productsResult struct {
		rows []entity.Product
		err  error
	}
	type receiptsResult struct {
		rows []entity.InventoryReceipt
		err  error
	}
	type movementsResult struct {
		rows []entity.InventoryMovement
		err  error
	}
	type salesResult struct {
		rows []entity.Sale
		err  error
	}

	productsCh := make(chan productsResult, 1)
	receiptsCh := make(chan receiptsResult, 1)
	movementsCh := make(chan movementsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		rows, err := e.products.List(ctx, userID)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := e.inventory.ListReceipts(ctx, userID, nil, nil)
		receiptsCh <- receiptsResult{rows, err}
	}()
	go func() {
		rows, err := e.inventory.ListMovements(ctx, userID, entity.MovementReceived)
		movementsCh <- movementsResult{rows, err}
	}()
	go func() {
		since := time.Now().Add(-recentSalesLookback)
		rows, err := e.sales.List(ctx, userID, repository.SaleFilter{StartDate: &since})
		salesCh <- salesResult{rows, err}
	}()

	products := <-productsCh
	receipts := <-receiptsCh
	movements := <-movementsCh
	sales := <-salesCh

	if err := firstError(products.err, receipts.err, movements.err, sales.err); err != nil {
		return nil, fmt.Errorf("stock report: %w: %w", domain.ErrPartialData, err)
	}

	receiptsByName := groupReceipts(receipts.rows)
	movementsByName := groupMovements(movements.rows)
	salesByName := countSales(sales.rows)

	report := &dto.StockReportDTO{
		Items:       make([]dto.StockItemDTO, 0, len(products.rows)),
		TotalValue:  decimal.Zero,
		GeneratedAt: time.Now(),
	}
	for _, p := range products.rows {
		key := names.Normalize(p.Name)
		avgCost, source := AverageCost(p, receiptsByName[key], movementsByName[key])
		recentSales := salesByName[key]

		value := currentValue(p, avgCost)
		health := stock.Classify(p.CurrentStock, recentSales)

		report.Items = append(report.Items, dto.StockItemDTO{
			ProductID:      p.ID,
			Name:           p.Name,
			CurrentStock:   p.CurrentStock,
			SellingPrice:   p.SellingPrice,
			AverageCost:    avgCost.Round(2),
			CostSource:     source,
			CurrentValue:   value.Round(2),
			Status:         health.Status,
			Recommendation: health.Recommendation,
			RecentSales:    recentSales,
		})
		report.TotalValue = report.TotalValue.Add(value)

		switch health.Status {
		case stock.StatusOut:
			report.OutOfStock++
		case stock.StatusLow:
			report.LowStock++
		case stock.StatusSlow:
			report.SlowMovers++
		}
	}
	report.TotalValue = report.TotalValue.Round(2)
	return report, nil
}

// AverageCost derives a product's weighted-average unit cost. Strict
// precedence, each step only when the previous yielded zero:
//  1. receipts:  sum(total_cost) / sum(quantity_received)
//  2. received movements: sum(|qty| * unit_price) / sum(|qty|)
//  3. the product's selling price as a proxy (approximation, not a cost)
func AverageCost(p entity.Product, receipts []entity.InventoryReceipt, received []entity.InventoryMovement) (decimal.Decimal, string) {
	if avg := receiptsAverage(receipts); avg.IsPositive() {
		return avg, SourceReceipts
	}
	if avg := movementsAverage(received); avg.IsPositive() {
		return avg, SourceMovements
	}
	if p.SellingPrice.IsPositive() {
		return p.SellingPrice, SourceSellingPrice
	}
	return decimal.Zero, SourceNone
}

func receiptsAverage(receipts []entity.InventoryReceipt) decimal.Decimal {
	totalCost := decimal.Zero
	totalQty := decimal.Zero
	for _, r := range receipts {
		totalCost = totalCost.Add(r.EffectiveTotalCost())
		totalQty = totalQty.Add(r.QuantityReceived)
	}
	if !totalQty.IsPositive() {
		return decimal.Zero
	}
	return totalCost.Div(totalQty)
}

func movementsAverage(received []entity.InventoryMovement) decimal.Decimal {
	totalCost := decimal.Zero
	totalQty := decimal.Zero
	for _, m := range received {
		qty := m.Quantity.Abs()
		totalCost = totalCost.Add(qty.Mul(m.UnitPrice))
		totalQty = totalQty.Add(qty)
	}
	if !totalQty.IsPositive() {
		return decimal.Zero
	}
	return totalCost.Div(totalQty)
}

// currentValue = stock * unit value. Unit value prefers a positive selling
// price; otherwise whichever cost figure is non-zero. Zero stock values to
// zero regardless of cost.
func currentValue(p entity.Product, avgCost decimal.Decimal) decimal.Decimal {
	if p.CurrentStock.Sign() <= 0 {
		return decimal.Zero
	}
	unit := avgCost
	if p.SellingPrice.IsPositive() {
		unit = p.SellingPrice
	}
	return p.CurrentStock.Mul(unit)
}

func groupReceipts(rows []entity.InventoryReceipt) map[string][]entity.InventoryReceipt {
	out := make(map[string][]entity.InventoryReceipt, len(rows))
	for _, r := range rows {
		key := names.Normalize(r.ProductName)
		out[key] = append(out[key], r)
	}
	return out
}

func groupMovements(rows []entity.InventoryMovement) map[string][]entity.InventoryMovement {
	out := make(map[string][]entity.InventoryMovement, len(rows))
	for _, m := range rows {
		key := names.Normalize(m.ProductName)
		out[key] = append(out[key], m)
	}
	return out
}

func countSales(rows []entity.Sale) map[string]int {
	out := make(map[string]int, len(rows))
	for _, s := range rows {
		out[names.Normalize(s.ProductName)]++
	}
	return out
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
