// Package stock holds the stock health classification rules (domain service,
// pure functions only).
package stock

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Health statuses.
const (
	StatusHealthy = "healthy"
	StatusLow     = "low"
	StatusOut     = "out"
	StatusSlow    = "slow"
)

// Policy constants, not configuration. Below lowStockThreshold units a
// product is low; above slowMoverThreshold units with no recent sales it is
// a slow mover.
const (
	lowStockThreshold  = 5
	slowMoverThreshold = 20
)

var (
	lowStock  = decimal.NewFromInt(lowStockThreshold)
	slowStock = decimal.NewFromInt(slowMoverThreshold)
)

// Health pairs a status with a recommendation for the shop owner.
type Health struct {
	Status         string
	Recommendation string
}

// Classify maps current stock and recent sales activity to a health status.
// recentSales is the number of sales of this product inside the lookback
// window (the caller decides the window, typically 30 days).
func Classify(currentStock decimal.Decimal, recentSales int) Health {
	switch {
	case currentStock.Sign() <= 0:
		return Health{
			Status:         StatusOut,
			Recommendation: "Out of stock. Reorder now to avoid losing sales.",
		}
	case currentStock.LessThan(lowStock):
		return Health{
			Status:         StatusLow,
			Recommendation: fmt.Sprintf("Only %s left. Restock soon.", currentStock.String()),
		}
	case currentStock.GreaterThan(slowStock) && recentSales == 0:
		return Health{
			Status:         StatusSlow,
			Recommendation: "No recent sales with plenty of stock. Consider a promotion or discount.",
		}
	default:
		return Health{
			Status:         StatusHealthy,
			Recommendation: "Stock level looks good.",
		}
	}
}
