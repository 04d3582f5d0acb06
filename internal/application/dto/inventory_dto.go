package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest body of POST /api/inventory/receipts.
type ReceiveStockRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost,omitempty"` // default: unit_cost * quantity
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
}

// RecordMovementRequest body of POST /api/inventory/movements
// (damaged/expired/adjusted entries; received and sold come from their own
// write paths).
type RecordMovementRequest struct {
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"` // signed
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// StockItemDTO one product in the stock report.
type StockItemDTO struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	CostSource     string          `json:"cost_source"` // receipts | movements | selling_price | none
	CurrentValue   decimal.Decimal `json:"current_value"`
	Status         string          `json:"status"`
	Recommendation string          `json:"recommendation"`
	RecentSales    int             `json:"recent_sales"`
}

// StockReportDTO full valuation snapshot for a user's inventory.
type StockReportDTO struct {
	Items         []StockItemDTO  `json:"items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	OutOfStock    int             `json:"out_of_stock"`
	LowStock      int             `json:"low_stock"`
	SlowMovers    int             `json:"slow_movers"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DriftItemDTO one product whose stock counter disagrees with the ledger.
type DriftItemDTO struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Counter     decimal.Decimal `json:"counter"`
	LedgerTotal decimal.Decimal `json:"ledger_total"`
	Drift       decimal.Decimal `json:"drift"` // counter - ledger
}

// ReconciliationDTO result of a counter-vs-ledger check.
type ReconciliationDTO struct {
	Checked  int            `json:"checked"`
	Drifted  []DriftItemDTO `json:"drifted"`
	Repaired bool           `json:"repaired"`
}

// CreateProductRequest body of POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	InitialStock decimal.Decimal `json:"initial_stock,omitempty"`
}

// ProductResponse public view of a product.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LastSaleDate      *time.Time      `json:"last_sale_date,omitempty"`
	MonthlySalesCount int             `json:"monthly_sales_count"`
}
