package tips_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/tips"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sale(name, amount string) entity.Sale {
	return entity.Sale{ProductName: name, Amount: d(amount), Quantity: d("1")}
}

func midMonth() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func tipIDs(list []dto.TipDTO) []string {
	ids := make([]string, 0, len(list))
	for _, tip := range list {
		ids = append(ids, tip.ID)
	}
	return ids
}

func TestBuildOrdersHighToLow(t *testing.T) {
	in := tips.Inputs{
		Now: midMonth(),
		// week avg = 700/7 = 100; today 10 < 50 -> slow-day high tip
		TodaySales: []entity.Sale{sale("Milo Tin", "10")},
		WeekSales:  []entity.Sale{sale("Milo Tin", "700")},
		MonthSales: []entity.Sale{sale("Milo Tin", "400"), sale("Rice Bag", "310")},
		Products: []entity.Product{
			{Name: "Milo Tin", CurrentStock: d("0")},
			{Name: "Rice Bag", CurrentStock: d("3")},
		},
	}

	out := tips.Build(in)
	require.NotEmpty(t, out)

	// no low tip may precede a medium one, no medium before a high
	rank := map[string]int{tips.PriorityHigh: 0, tips.PriorityMedium: 1, tips.PriorityLow: 2}
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, rank[out[i-1].Priority], rank[out[i].Priority],
			"tip %q (%s) sorted after %q (%s)", out[i-1].ID, out[i-1].Priority, out[i].ID, out[i].Priority)
	}

	// within a tier generation order is preserved
	ids := tipIDs(out)
	assert.Equal(t, "today_below_average", ids[0])
	assert.Equal(t, "stockouts", ids[1])
}

func TestBuildBestSellerDominance(t *testing.T) {
	in := tips.Inputs{
		Now: midMonth(),
		MonthSales: []entity.Sale{
			sale("Milo Tin", "800"),
			sale("Rice Bag", "200"),
		},
	}

	out := tips.Build(in)
	ids := tipIDs(out)
	assert.Contains(t, ids, "best_seller_dominant")
	assert.NotContains(t, ids, "best_seller")
}

func TestBuildBestSellerBalanced(t *testing.T) {
	in := tips.Inputs{
		Now: midMonth(),
		MonthSales: []entity.Sale{
			sale("Milo Tin", "500"),
			sale("Rice Bag", "500"),
		},
	}

	out := tips.Build(in)
	ids := tipIDs(out)
	assert.Contains(t, ids, "best_seller")
	assert.NotContains(t, ids, "best_seller_dominant")
}

func TestBuildBestSellerTieBreakIsDeterministic(t *testing.T) {
	in := tips.Inputs{
		Now: midMonth(),
		MonthSales: []entity.Sale{
			sale("Bread", "2000"),
			sale("Yam", "2000"),
			sale("Eggs", "2000"),
		},
	}

	first := tips.Build(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, tipIDs(first), tipIDs(tips.Build(in)))
	}
}

func TestBuildReversedSalesIgnored(t *testing.T) {
	reversed := entity.Sale{ProductName: "Milo Tin", Amount: d("900"), Quantity: d("1"), Reversed: true}
	in := tips.Inputs{
		Now:        midMonth(),
		MonthSales: []entity.Sale{reversed, sale("Rice Bag", "100")},
	}

	out := tips.Build(in)
	for _, tip := range out {
		if tip.ID == "best_seller" || tip.ID == "best_seller_dominant" {
			assert.Contains(t, tip.Message, "Rice Bag")
		}
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	out := tips.Build(tips.Inputs{Now: midMonth()})
	assert.Empty(t, out)
}

func TestBuildRevenueBands(t *testing.T) {
	strong := tips.Build(tips.Inputs{Now: midMonth(), MonthSales: []entity.Sale{sale("Milo Tin", "6000")}})
	assert.Contains(t, tipIDs(strong), "revenue_strong")

	modest := tips.Build(tips.Inputs{Now: midMonth(), MonthSales: []entity.Sale{sale("Milo Tin", "600")}})
	assert.Contains(t, tipIDs(modest), "revenue_growing")

	early := tips.Build(tips.Inputs{Now: midMonth(), MonthSales: []entity.Sale{sale("Milo Tin", "50")}})
	assert.Contains(t, tipIDs(early), "revenue_early")
}
