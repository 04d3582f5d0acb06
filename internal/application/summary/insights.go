package summary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
)

// Insight bands.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandLow       = "low"
	BandNegative  = "negative"
	BandHigh      = "high"
	BandModerate  = "moderate"
	BandOK        = "ok"
)

// Fixed banding thresholds (percentages). Policy, not configuration.
var (
	marginExcellent = decimal.NewFromInt(30)
	marginGood      = decimal.NewFromInt(15)
	creditHigh      = decimal.NewFromInt(50)
	creditModerate  = decimal.NewFromInt(25)
	costHigh        = decimal.NewFromInt(70)
	costGood        = decimal.NewFromInt(40)
)

// MarginBand bands the profit margin: >30% excellent, >15% good, >0% low,
// otherwise negative.
func MarginBand(marginPct decimal.Decimal) string {
	switch {
	case marginPct.GreaterThan(marginExcellent):
		return BandExcellent
	case marginPct.GreaterThan(marginGood):
		return BandGood
	case marginPct.IsPositive():
		return BandLow
	default:
		return BandNegative
	}
}

// CreditBand bands the credit-to-revenue ratio: >50% high, >25% moderate.
func CreditBand(creditRatio decimal.Decimal) string {
	switch {
	case creditRatio.GreaterThan(creditHigh):
		return BandHigh
	case creditRatio.GreaterThan(creditModerate):
		return BandModerate
	default:
		return BandOK
	}
}

// CostBand bands the cost-to-revenue ratio: >70% high, <40% good.
func CostBand(costRatio decimal.Decimal) string {
	switch {
	case costRatio.GreaterThan(costHigh):
		return BandHigh
	case costRatio.LessThan(costGood):
		return BandGood
	default:
		return BandOK
	}
}

// buildInsights selects the qualitative messages for a summary. No revenue
// means no ratios worth narrating; the single "no sales" insight makes the
// empty state explicit instead of reporting a negative margin.
func buildInsights(marginPct, creditRatio, costRatio, revenue decimal.Decimal) []dto.InsightDTO {
	if !revenue.IsPositive() {
		return []dto.InsightDTO{{
			Kind:    "margin",
			Band:    BandLow,
			Message: "No sales recorded in this period yet.",
		}}
	}

	insights := make([]dto.InsightDTO, 0, 3)

	switch band := MarginBand(marginPct); band {
	case BandExcellent:
		insights = append(insights, dto.InsightDTO{Kind: "margin", Band: band,
			Message: fmt.Sprintf("Excellent profit margin of %s%%. Keep it up!", marginPct.String())})
	case BandGood:
		insights = append(insights, dto.InsightDTO{Kind: "margin", Band: band,
			Message: fmt.Sprintf("Good profit margin of %s%%.", marginPct.String())})
	case BandLow:
		insights = append(insights, dto.InsightDTO{Kind: "margin", Band: band,
			Message: fmt.Sprintf("Thin profit margin of %s%%. Review pricing or costs.", marginPct.String())})
	case BandNegative:
		insights = append(insights, dto.InsightDTO{Kind: "margin", Band: band,
			Message: "You spent more than you earned this period."})
	}

	switch band := CreditBand(creditRatio); band {
	case BandHigh:
		insights = append(insights, dto.InsightDTO{Kind: "credit", Band: band,
			Message: fmt.Sprintf("%s%% of revenue is on credit. Chase outstanding payments.", creditRatio.String())})
	case BandModerate:
		insights = append(insights, dto.InsightDTO{Kind: "credit", Band: band,
			Message: fmt.Sprintf("%s%% of revenue is on credit. Keep an eye on it.", creditRatio.String())})
	}

	switch band := CostBand(costRatio); band {
	case BandHigh:
		insights = append(insights, dto.InsightDTO{Kind: "cost", Band: band,
			Message: fmt.Sprintf("Inventory spend is %s%% of revenue. Buy smaller batches or negotiate.", costRatio.String())})
	case BandGood:
		insights = append(insights, dto.InsightDTO{Kind: "cost", Band: band,
			Message: "Inventory spend is well under control."})
	}

	return insights
}
