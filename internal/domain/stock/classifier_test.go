package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kofiannan/biztrack-api/internal/domain/stock"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		stockLevel  int64
		recentSales int
		want        string
	}{
		{"zero stock is out", 0, 3, stock.StatusOut},
		{"negative stock is out", -1, 0, stock.StatusOut},
		{"below five is low", 3, 10, stock.StatusLow},
		{"exactly four is low", 4, 0, stock.StatusLow},
		{"exactly five is not low", 5, 1, stock.StatusHealthy},
		{"plenty of stock and no sales is slow", 25, 0, stock.StatusSlow},
		{"plenty of stock with sales is healthy", 25, 1, stock.StatusHealthy},
		{"exactly twenty with no sales is not slow", 20, 0, stock.StatusHealthy},
		{"mid range is healthy", 10, 0, stock.StatusHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stock.Classify(decimal.NewFromInt(tt.stockLevel), tt.recentSales)
			assert.Equal(t, tt.want, got.Status)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestClassifyFractionalStock(t *testing.T) {
	// Weighed goods can hold fractional stock.
	got := stock.Classify(decimal.NewFromFloat(4.5), 2)
	assert.Equal(t, stock.StatusLow, got.Status)
}

func TestOutTakesPriorityOverSlow(t *testing.T) {
	got := stock.Classify(decimal.Zero, 0)
	assert.Equal(t, stock.StatusOut, got.Status)
}
