package dto

import "github.com/shopspring/decimal"

// PeriodSummaryDTO financial summary for one inclusive date window.
// All monetary fields are rounded to two decimal places.
type PeriodSummaryDTO struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`

	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`       // inventory spend in the window, not matched to sales
	Expenses  decimal.Decimal `json:"expenses"`
	Credit    decimal.Decimal `json:"credit"`     // fully outstanding credit
	MoneyOwed decimal.Decimal `json:"money_owed"` // partial-payment outstanding
	Misc      decimal.Decimal `json:"misc"`       // reserved, currently always zero
	Profit    decimal.Decimal `json:"profit"`

	MarginPct   decimal.Decimal `json:"margin_pct"`
	CreditRatio decimal.Decimal `json:"credit_ratio"`
	CostRatio   decimal.Decimal `json:"cost_ratio"`

	Insights []InsightDTO `json:"insights"`
}

// InsightDTO one qualitative banding result.
type InsightDTO struct {
	Kind    string `json:"kind"` // margin | credit | cost
	Band    string `json:"band"`
	Message string `json:"message"`
}
