package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"atelierledger/internal/apperr"
	"atelierledger/internal/dateutil"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

// DateRange is an inclusive calendar-date range. A range whose end falls
// before its start matches nothing; the engine never swaps the bounds.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Empty() bool { return r.End.Before(r.Start) }

func (r DateRange) Contains(t time.Time) bool {
	if r.Empty() {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthRange spans one calendar month. Callers wanting normalized bounds
// use conveniences like this one; normalization is never the engine's job.
func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

type SalesSummary struct {
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	Sales        []models.Sale   `json:"sales"`
}

type PurchaseSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type GoalProgress struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	RevenueTarget   decimal.Decimal `json:"revenue_target"`
	RevenueAchieved decimal.Decimal `json:"revenue_achieved"`
	RevenuePercent  float64         `json:"revenue_percent"`
	ProfitTarget    decimal.Decimal `json:"profit_target"`
	ProfitAchieved  decimal.Decimal `json:"profit_achieved"`
	ProfitPercent   float64         `json:"profit_percent"`
}

type LifetimeTotals struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Purchases decimal.Decimal `json:"purchases"`
}

// ReportService computes period-scoped financial summaries. It is
// read-only. Stored dates may be in either encoding, so range filtering
// parses every row instead of comparing date text in SQL; a row whose date
// cannot be parsed is excluded from range-scoped results rather than
// silently included.
type ReportService struct {
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	goals     repository.GoalRepository
}

func NewReportService(
	sales repository.SaleRepository,
	purchases repository.PurchaseRepository,
	goals repository.GoalRepository,
) *ReportService {
	return &ReportService{sales: sales, purchases: purchases, goals: goals}
}

// SummarizeSales filters sales by the inclusive range and, when set, an
// exact client-name match, and sums revenue, cost and profit over the
// matches. Matches come back ordered by date descending, ties broken by
// descending id.
func (s *ReportService) SummarizeSales(ctx context.Context, r DateRange, client string) (*SalesSummary, error) {
	all, err := s.sales.All(ctx)
	if err != nil {
		return nil, err
	}

	client = strings.TrimSpace(client)
	type dated struct {
		sale models.Sale
		day  time.Time
	}
	var matches []dated
	for _, sale := range all {
		day, ok := dateutil.ParseAny(sale.Date)
		if !ok {
			continue
		}
		if !r.Contains(day) {
			continue
		}
		if client != "" && (sale.Client == nil || *sale.Client != client) {
			continue
		}
		matches = append(matches, dated{sale: sale, day: day})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].day.Equal(matches[j].day) {
			return matches[i].day.After(matches[j].day)
		}
		return matches[i].sale.ID > matches[j].sale.ID
	})

	sum := &SalesSummary{
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
		Sales:        make([]models.Sale, 0, len(matches)),
	}
	for _, m := range matches {
		sum.Count++
		sum.TotalRevenue = sum.TotalRevenue.Add(m.sale.GrossValue)
		sum.TotalCost = sum.TotalCost.Add(m.sale.Cost)
		sum.TotalProfit = sum.TotalProfit.Add(m.sale.Profit)
		sum.Sales = append(sum.Sales, m.sale)
	}
	return sum, nil
}

// SummarizePurchases applies the same filtering discipline to purchases.
func (s *ReportService) SummarizePurchases(ctx context.Context, r DateRange) (*PurchaseSummary, error) {
	all, err := s.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &PurchaseSummary{Total: decimal.Zero}
	for _, p := range all {
		day, ok := dateutil.ParseAny(p.Date)
		if !ok || !r.Contains(day) {
			continue
		}
		sum.Count++
		sum.Total = sum.Total.Add(p.Value)
	}
	return sum, nil
}

// GoalProgress compares the month's targets against achieved totals.
// Percentages are the raw achieved/target ratio ×100, uncapped; clamping
// for display is the caller's concern. A period without a recorded goal
// reports zero targets and zero percent.
func (s *ReportService) GoalProgress(ctx context.Context, year, month int) (*GoalProgress, error) {
	p := &GoalProgress{
		Year:            year,
		Month:           month,
		RevenueTarget:   decimal.Zero,
		RevenueAchieved: decimal.Zero,
		ProfitTarget:    decimal.Zero,
		ProfitAchieved:  decimal.Zero,
	}

	goal, err := s.goals.GetByPeriod(ctx, year, month)
	switch {
	case err == nil:
		p.RevenueTarget = goal.RevenueTarget
		p.ProfitTarget = goal.ProfitTarget
	case errors.Is(err, apperr.ErrNotFound):
		// no goal recorded for this period; targets stay zero
	default:
		return nil, err
	}

	sum, err := s.SummarizeSales(ctx, MonthRange(year, time.Month(month)), "")
	if err != nil {
		return nil, err
	}
	p.RevenueAchieved = sum.TotalRevenue
	p.ProfitAchieved = sum.TotalProfit
	p.RevenuePercent = percent(p.RevenueAchieved, p.RevenueTarget)
	p.ProfitPercent = percent(p.ProfitAchieved, p.ProfitTarget)
	return p, nil
}

// NetCashFlow is totalProfit − totalPurchases over the range. Negative
// results represent a loss period and are returned as-is.
func (s *ReportService) NetCashFlow(ctx context.Context, r DateRange) (decimal.Decimal, error) {
	sales, err := s.SummarizeSales(ctx, r, "")
	if err != nil {
		return decimal.Zero, err
	}
	purchases, err := s.SummarizePurchases(ctx, r)
	if err != nil {
		return decimal.Zero, err
	}
	return sales.TotalProfit.Sub(purchases.Total), nil
}

// Lifetime sums revenue and purchases over every recorded row, regardless
// of date text.
func (s *ReportService) Lifetime(ctx context.Context) (*LifetimeTotals, error) {
	sales, err := s.sales.All(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := &LifetimeTotals{Revenue: decimal.Zero, Purchases: decimal.Zero}
	for _, sale := range sales {
		totals.Revenue = totals.Revenue.Add(sale.GrossValue)
	}
	for _, p := range purchases {
		totals.Purchases = totals.Purchases.Add(p.Value)
	}
	return totals, nil
}

func percent(achieved, target decimal.Decimal) float64 {
	if target.Sign() <= 0 {
		return 0
	}
	f, _ := achieved.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
