package costing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/costing"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/internal/domain/stock"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func receipt(name, qty, unitCost, totalCost string) entity.InventoryReceipt {
	return entity.InventoryReceipt{
		ProductName:      name,
		QuantityReceived: d(qty),
		UnitCost:         d(unitCost),
		TotalCost:        d(totalCost),
	}
}

func TestAverageCostFromReceipts(t *testing.T) {
	p := entity.Product{Name: "Milo Tin", SellingPrice: d("15")}
	receipts := []entity.InventoryReceipt{
		receipt("Milo Tin", "2", "10", "20"),
		receipt("Milo Tin", "4", "5", "20"),
	}

	avg, source := costing.AverageCost(p, receipts, nil)
	assert.Equal(t, costing.SourceReceipts, source)
	// (20 + 20) / (2 + 4)
	assert.Equal(t, "6.67", avg.Round(2).String())
}

func TestAverageCostUsesTotalCostWhenPositive(t *testing.T) {
	p := entity.Product{Name: "Rice Bag"}
	// total_cost of 18 wins over unit_cost * qty = 20.
	receipts := []entity.InventoryReceipt{receipt("Rice Bag", "2", "10", "18")}

	avg, source := costing.AverageCost(p, receipts, nil)
	assert.Equal(t, costing.SourceReceipts, source)
	assert.Equal(t, "9", avg.String())
}

func TestAverageCostFallsBackToMovements(t *testing.T) {
	p := entity.Product{Name: "Sugar", SellingPrice: d("8")}
	received := []entity.InventoryMovement{
		{ProductName: "Sugar", Quantity: d("10"), UnitPrice: d("3")},
		{ProductName: "Sugar", Quantity: d("10"), UnitPrice: d("5")},
	}

	avg, source := costing.AverageCost(p, nil, received)
	assert.Equal(t, costing.SourceMovements, source)
	assert.Equal(t, "4", avg.String())
}

func TestAverageCostFallsBackToSellingPrice(t *testing.T) {
	p := entity.Product{Name: "Salt", SellingPrice: d("2.50")}

	avg, source := costing.AverageCost(p, nil, nil)
	assert.Equal(t, costing.SourceSellingPrice, source)
	assert.Equal(t, "2.5", avg.String())
}

func TestAverageCostNoSource(t *testing.T) {
	p := entity.Product{Name: "Mystery"}

	avg, source := costing.AverageCost(p, nil, nil)
	assert.Equal(t, costing.SourceNone, source)
	assert.True(t, avg.IsZero())
}

func TestAverageCostIgnoresZeroQuantityReceipts(t *testing.T) {
	p := entity.Product{Name: "Beans", SellingPrice: d("7")}
	receipts := []entity.InventoryReceipt{receipt("Beans", "0", "10", "0")}

	_, source := costing.AverageCost(p, receipts, nil)
	assert.Equal(t, costing.SourceSellingPrice, source)
}

// fake repositories for the full report path

type fakeProductRepo struct {
	repository.ProductRepository
	rows []entity.Product
	err  error
}

func (f *fakeProductRepo) List(_ context.Context, _ string) ([]entity.Product, error) {
	return f.rows, f.err
}

type fakeInventoryRepo struct {
	repository.InventoryRepository
	receipts  []entity.InventoryReceipt
	movements []entity.InventoryMovement
	err       error
}

func (f *fakeInventoryRepo) ListReceipts(_ context.Context, _ string, _, _ *time.Time) ([]entity.InventoryReceipt, error) {
	return f.receipts, f.err
}

func (f *fakeInventoryRepo) ListMovements(_ context.Context, _, _ string) ([]entity.InventoryMovement, error) {
	return f.movements, f.err
}

type fakeSaleRepo struct {
	repository.SaleRepository
	rows []entity.Sale
	err  error
}

func (f *fakeSaleRepo) List(_ context.Context, _ string, _ repository.SaleFilter) ([]entity.Sale, error) {
	return f.rows, f.err
}

func TestStockReport(t *testing.T) {
	products := &fakeProductRepo{rows: []entity.Product{
		{ID: "p1", Name: "Milo Tin", CurrentStock: d("10"), SellingPrice: d("15")},
		{ID: "p2", Name: "Rice Bag", CurrentStock: d("0"), SellingPrice: d("50")},
		{ID: "p3", Name: "Old Stock", CurrentStock: d("30"), SellingPrice: d("5")},
	}}
	inv := &fakeInventoryRepo{receipts: []entity.InventoryReceipt{
		receipt("milo tin", "10", "10", "100"),
	}}
	sales := &fakeSaleRepo{rows: []entity.Sale{
		{ProductName: "MILO TIN", Amount: d("15"), Quantity: d("1")},
	}}

	engine := costing.NewEngine(products, inv, sales)
	report, err := engine.StockReport(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, report.Items, 3)

	milo := report.Items[0]
	assert.Equal(t, "10", milo.AverageCost.String())
	assert.Equal(t, costing.SourceReceipts, milo.CostSource)
	// value prefers selling price: 10 * 15
	assert.Equal(t, "150", milo.CurrentValue.String())
	assert.Equal(t, stock.StatusHealthy, milo.Status)
	assert.Equal(t, 1, milo.RecentSales)

	rice := report.Items[1]
	assert.True(t, rice.CurrentValue.IsZero(), "zero stock values to zero")
	assert.Equal(t, stock.StatusOut, rice.Status)

	old := report.Items[2]
	assert.Equal(t, stock.StatusSlow, old.Status)

	// 150 + 0 + 150
	assert.Equal(t, "300", report.TotalValue.String())
	assert.Equal(t, 1, report.OutOfStock)
	assert.Equal(t, 1, report.SlowMovers)
	assert.Equal(t, 0, report.LowStock)
}

func TestStockReportFailsOnAnyLeg(t *testing.T) {
	boom := errors.New("connection reset")
	engine := costing.NewEngine(
		&fakeProductRepo{},
		&fakeInventoryRepo{err: boom},
		&fakeSaleRepo{},
	)

	_, err := engine.StockReport(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialData)
	assert.ErrorIs(t, err, boom)
}
