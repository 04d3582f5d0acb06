// Package tips generates the prioritized list of contextual market tips.
// The engine is stateless per call; the presentation layer owns rotation.
package tips

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/ledger"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/names"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
	"github.com/kofiannan/biztrack-api/internal/domain/stock"
)

// Priority bands.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Monthly revenue banding thresholds.
var (
	revenueStrong = decimal.NewFromInt(5000)
	revenueModest = decimal.NewFromInt(500)
)

// bestSellerDominance: above this share of monthly revenue one product
// dominates and diversification is suggested.
var bestSellerDominance = decimal.NewFromFloat(0.5)

// Inputs are the aggregates the candidate rules read. Day boundaries are the
// caller's local midnight.
type Inputs struct {
	Now        time.Time
	TodaySales []entity.Sale
	WeekSales  []entity.Sale // last 7 full days, excluding today
	MonthSales []entity.Sale // current calendar month to date
	Products   []entity.Product
}

// Prioritizer fetches the aggregates and orders the candidates.
type Prioritizer struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
}

// NewPrioritizer builds the prioritizer.
func NewPrioritizer(sales repository.SaleRepository, products repository.ProductRepository) *Prioritizer {
	return &Prioritizer{sales: sales, products: products}
}

// Tips fetches the four aggregates in parallel and builds the ordered list.
// One failed leg fails the call with ErrPartialData.
func (p *Prioritizer) Tips(ctx context.Context, userID string) ([]dto.TipDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type productsResult struct {
		rows []entity.Product
		err  error
	}

	todayCh := make(chan salesResult, 1)
	weekCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		rows, err := p.sales.List(ctx, userID, repository.SaleFilter{StartDate: &todayStart})
		todayCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := p.sales.List(ctx, userID, repository.SaleFilter{StartDate: &weekStart, EndDate: &todayStart})
		weekCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := p.sales.List(ctx, userID, repository.SaleFilter{StartDate: &monthStart})
		monthCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := p.products.List(ctx, userID)
		productsCh <- productsResult{rows, err}
	}()

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	products := <-productsCh

	for _, err := range []error{today.err, week.err, month.err, products.err} {
		if err != nil {
			return nil, fmt.Errorf("tips: %w: %w", domain.ErrPartialData, err)
		}
	}

	return Build(Inputs{
		Now:        now,
		TodaySales: today.rows,
		WeekSales:  week.rows,
		MonthSales: month.rows,
		Products:   products.rows,
	}), nil
}

// Build generates the candidates in a fixed order and stable-sorts them
// high -> medium -> low, so candidates within a tier keep generation order.
func Build(in Inputs) []dto.TipDTO {
	var candidates []dto.TipDTO
	add := func(id, priority, title, message string) {
		candidates = append(candidates, dto.TipDTO{ID: id, Title: title, Message: message, Priority: priority})
	}

	// 1. today vs 7-day average
	todayRevenue := ledger.SumEffectiveAmount(in.TodaySales)
	weekAvg := ledger.SumEffectiveAmount(in.WeekSales).Div(decimal.NewFromInt(7))
	switch {
	case weekAvg.IsPositive() && todayRevenue.LessThan(weekAvg.Mul(decimal.NewFromFloat(0.5))):
		add("today_below_average", PriorityHigh, "Slow day so far",
			fmt.Sprintf("Today's sales (%s) are under half your daily average (%s). Push your best sellers.",
				todayRevenue.Round(2).String(), weekAvg.Round(2).String()))
	case weekAvg.IsPositive() && todayRevenue.GreaterThan(weekAvg):
		add("today_above_average", PriorityLow, "Strong day",
			fmt.Sprintf("Today's sales (%s) beat your daily average (%s).",
				todayRevenue.Round(2).String(), weekAvg.Round(2).String()))
	}

	// 2. stock-out / low-stock counts
	outCount, lowCount := 0, 0
	for _, p := range in.Products {
		recent := recentSalesCount(in.WeekSales, p.Name) + recentSalesCount(in.TodaySales, p.Name)
		switch stock.Classify(p.CurrentStock, recent).Status {
		case stock.StatusOut:
			outCount++
		case stock.StatusLow:
			lowCount++
		}
	}
	if outCount > 0 {
		add("stockouts", PriorityHigh, "Products out of stock",
			fmt.Sprintf("%d product(s) are out of stock. Restock to avoid losing customers.", outCount))
	}
	if lowCount > 0 {
		add("low_stock", PriorityMedium, "Low stock warning",
			fmt.Sprintf("%d product(s) are running low.", lowCount))
	}

	// 3. best-selling product share of monthly revenue
	monthRevenue := ledger.SumEffectiveAmount(in.MonthSales)
	if name, share := bestSellerShare(in.MonthSales, monthRevenue); name != "" {
		if share.GreaterThan(bestSellerDominance) {
			add("best_seller_dominant", PriorityMedium, "One product dominates",
				fmt.Sprintf("%s brings in %s%% of this month's revenue. Consider widening your range.",
					name, share.Mul(decimal.NewFromInt(100)).Round(0).String()))
		} else {
			add("best_seller", PriorityLow, "Best seller",
				fmt.Sprintf("%s is your best seller this month.", name))
		}
	}

	// 4. average daily sales projection
	if monthRevenue.IsPositive() {
		daysElapsed := in.Now.Day()
		daysInMonth := time.Date(in.Now.Year(), in.Now.Month()+1, 0, 0, 0, 0, 0, in.Now.Location()).Day()
		projection := monthRevenue.
			Div(decimal.NewFromInt(int64(daysElapsed))).
			Mul(decimal.NewFromInt(int64(daysInMonth)))
		add("monthly_projection", PriorityLow, "Month-end projection",
			fmt.Sprintf("At the current pace you will close the month around %s.", projection.Round(2).String()))
	}

	// 5. monthly revenue banding
	switch {
	case monthRevenue.GreaterThanOrEqual(revenueStrong):
		add("revenue_strong", PriorityLow, "Strong month",
			"Monthly revenue is strong. A good time to negotiate bulk discounts with suppliers.")
	case monthRevenue.GreaterThanOrEqual(revenueModest):
		add("revenue_growing", PriorityLow, "Keep growing",
			"Steady revenue this month. Reinvest in your fastest movers.")
	case monthRevenue.IsPositive():
		add("revenue_early", PriorityMedium, "Build momentum",
			"Revenue is still small this month. Try promoting on WhatsApp or your storefront.")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return priorityRank[candidates[i].Priority] < priorityRank[candidates[j].Priority]
	})
	return candidates
}

func recentSalesCount(sales []entity.Sale, productName string) int {
	key := names.Normalize(productName)
	count := 0
	for _, s := range sales {
		if !s.Reversed && names.Normalize(s.ProductName) == key {
			count++
		}
	}
	return count
}

// bestSellerShare returns the top product by effective revenue this month
// and its share of the total.
func bestSellerShare(sales []entity.Sale, total decimal.Decimal) (string, decimal.Decimal) {
	if !total.IsPositive() {
		return "", decimal.Zero
	}
	byProduct := make(map[string]decimal.Decimal)
	displayName := make(map[string]string)
	for _, s := range sales {
		key := names.Normalize(s.ProductName)
		byProduct[key] = byProduct[key].Add(s.EffectiveAmount())
		if _, ok := displayName[key]; !ok {
			displayName[key] = s.ProductName
		}
	}
	bestKey := ""
	best := decimal.Zero
	for key, amount := range byProduct {
		if amount.GreaterThan(best) || (amount.Equal(best) && (bestKey == "" || key < bestKey)) {
			bestKey, best = key, amount
		}
	}
	if bestKey == "" {
		return "", decimal.Zero
	}
	return displayName[bestKey], best.Div(total)
}
