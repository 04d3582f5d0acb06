package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/ledger"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSumEffectiveAmount(t *testing.T) {
	sales := []entity.Sale{
		{Amount: d("100"), Quantity: d("2")},
		{Amount: d("50"), Quantity: d("1"), Reversed: true},
		{Amount: d("80"), Quantity: d("4"), ReversedAmount: d("30"), ReversedQuantity: d("1")},
	}

	// 100 + 0 + (80 - 30)
	assert.Equal(t, "150", ledger.SumEffectiveAmount(sales).String())
	// 2 + 0 + (4 - 1)
	assert.Equal(t, "5", ledger.SumEffectiveQuantity(sales).String())
}

func TestSumEffectiveAmountEmpty(t *testing.T) {
	assert.True(t, ledger.SumEffectiveAmount(nil).IsZero())
	assert.True(t, ledger.SumEffectiveQuantity(nil).IsZero())
}

func TestEffectiveAmountNeverNegative(t *testing.T) {
	// An over-reversal clamps to zero instead of going negative.
	s := entity.Sale{Amount: d("50"), ReversedAmount: d("70")}
	assert.True(t, s.EffectiveAmount().IsZero())
}

func TestSumIsIdempotent(t *testing.T) {
	sales := []entity.Sale{{Amount: d("10"), Quantity: d("1")}}
	first := ledger.SumEffectiveAmount(sales)
	second := ledger.SumEffectiveAmount(sales)
	assert.True(t, first.Equal(second))
}

type fakeSaleRepo struct {
	repository.SaleRepository
	rows []entity.Sale
}

func (f *fakeSaleRepo) List(_ context.Context, _ string, _ repository.SaleFilter) ([]entity.Sale, error) {
	return f.rows, nil
}

func TestListResponseTotals(t *testing.T) {
	repo := &fakeSaleRepo{rows: []entity.Sale{
		{ID: "s1", ProductName: "Milo Tin", Amount: d("100"), Quantity: d("2")},
		{ID: "s2", ProductName: "Rice Bag", Amount: d("60"), Quantity: d("1"), Reversed: true},
	}}
	reader := ledger.NewReader(repo)

	out, err := reader.ListResponse(context.Background(), "u1", repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, out.Sales, 2)
	assert.Equal(t, "100", out.TotalAmount.String())
	assert.Equal(t, "2", out.TotalQuantity.String())
	assert.True(t, out.Sales[1].EffectiveAmount.IsZero())
}
