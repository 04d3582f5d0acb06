package summary_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/summary"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cashSale(amount string) entity.Sale {
	return entity.Sale{
		Amount:        d(amount),
		Quantity:      d("1"),
		PaymentMethod: entity.PaymentCash,
		PurchaseDate:  time.Now(),
	}
}

func TestComputeBasicProfit(t *testing.T) {
	sales := []entity.Sale{cashSale("600"), cashSale("400")}

	out := summary.Compute(sales, d("400"), d("100"))
	assert.Equal(t, "1000", out.Revenue.String())
	assert.Equal(t, "500", out.Profit.String())
	assert.Equal(t, "50", out.MarginPct.String())
	assert.Equal(t, "40", out.CostRatio.String())
	assert.True(t, out.Credit.IsZero())
	assert.True(t, out.MoneyOwed.IsZero())

	require.NotEmpty(t, out.Insights)
	assert.Equal(t, "margin", out.Insights[0].Kind)
	assert.Equal(t, summary.BandExcellent, out.Insights[0].Band)
}

func TestComputeReversedSaleContributesNothing(t *testing.T) {
	reversed := entity.Sale{
		Amount:            d("500"),
		Quantity:          d("2"),
		PaymentMethod:     entity.PaymentCredit,
		Reversed:          true,
		OutstandingCredit: d("500"),
		PartialPayment:    true,
	}

	out := summary.Compute([]entity.Sale{reversed, cashSale("100")}, decimal.Zero, decimal.Zero)
	assert.Equal(t, "100", out.Revenue.String())
	assert.True(t, out.Credit.IsZero())
	assert.True(t, out.MoneyOwed.IsZero())
}

func TestComputeCreditAndMoneyOwed(t *testing.T) {
	creditSale := entity.Sale{
		Amount:        d("200"),
		Quantity:      d("1"),
		PaymentMethod: entity.PaymentCredit,
	}
	partial := entity.Sale{
		Amount:         d("100"),
		Quantity:       d("1"),
		PaymentMethod:  entity.PaymentCash,
		PartialPayment: true,
	}

	out := summary.Compute([]entity.Sale{creditSale, partial}, decimal.Zero, decimal.Zero)
	// credit sale with no explicit outstanding figure owes its full amount
	assert.Equal(t, "200", out.Credit.String())
	// partial payments assume half the effective amount is still owed
	assert.Equal(t, "50", out.MoneyOwed.String())
}

func TestComputeExplicitOutstandingWins(t *testing.T) {
	creditSale := entity.Sale{
		Amount:            d("200"),
		Quantity:          d("1"),
		PaymentMethod:     entity.PaymentCredit,
		OutstandingCredit: d("80"),
	}

	out := summary.Compute([]entity.Sale{creditSale}, decimal.Zero, decimal.Zero)
	assert.Equal(t, "80", out.Credit.String())
}

func TestComputeEmptyWindow(t *testing.T) {
	out := summary.Compute(nil, decimal.Zero, decimal.Zero)
	assert.True(t, out.Revenue.IsZero())
	assert.True(t, out.Profit.IsZero())
	assert.True(t, out.MarginPct.IsZero())

	require.Len(t, out.Insights, 1)
	assert.Contains(t, out.Insights[0].Message, "No sales")
}

func TestComputeNegativeProfit(t *testing.T) {
	out := summary.Compute([]entity.Sale{cashSale("100")}, d("150"), d("30"))
	assert.Equal(t, "-80", out.Profit.String())
	assert.Equal(t, summary.BandNegative, out.Insights[0].Band)
}

func TestMarginBand(t *testing.T) {
	assert.Equal(t, summary.BandExcellent, summary.MarginBand(d("30.01")))
	assert.Equal(t, summary.BandGood, summary.MarginBand(d("30")))
	assert.Equal(t, summary.BandGood, summary.MarginBand(d("15.01")))
	assert.Equal(t, summary.BandLow, summary.MarginBand(d("15")))
	assert.Equal(t, summary.BandLow, summary.MarginBand(d("0.01")))
	assert.Equal(t, summary.BandNegative, summary.MarginBand(d("0")))
	assert.Equal(t, summary.BandNegative, summary.MarginBand(d("-5")))
}

func TestCreditBand(t *testing.T) {
	assert.Equal(t, summary.BandHigh, summary.CreditBand(d("50.01")))
	assert.Equal(t, summary.BandModerate, summary.CreditBand(d("50")))
	assert.Equal(t, summary.BandModerate, summary.CreditBand(d("25.01")))
	assert.Equal(t, summary.BandOK, summary.CreditBand(d("25")))
}

func TestCostBand(t *testing.T) {
	assert.Equal(t, summary.BandHigh, summary.CostBand(d("70.01")))
	assert.Equal(t, summary.BandOK, summary.CostBand(d("70")))
	assert.Equal(t, summary.BandOK, summary.CostBand(d("40")))
	assert.Equal(t, summary.BandGood, summary.CostBand(d("39.99")))
}
