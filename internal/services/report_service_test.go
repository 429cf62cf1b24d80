package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

func newReportService(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	conn := setupDB(t)
	svc := NewReportService(
		repository.NewSaleRepository(conn),
		repository.NewPurchaseRepository(conn),
		repository.NewGoalRepository(conn),
	)
	return svc, conn
}

func seedSale(t *testing.T, conn *gorm.DB, date, gross, cost string, client *string) models.Sale {
	t.Helper()
	g, c := dec(gross), dec(cost)
	sale := models.Sale{
		Date: date, Description: "venda", Type: models.SaleTypeLaser,
		GrossValue: g, Cost: c, Profit: g.Sub(c),
		Status: models.StatusCreated, Client: client,
	}
	require.NoError(t, conn.Create(&sale).Error)
	return sale
}

func seedPurchase(t *testing.T, conn *gorm.DB, date, value string) {
	t.Helper()
	p := models.Purchase{
		Date: date, Description: "compra", Category: models.CategorySupplies, Value: dec(value),
	}
	require.NoError(t, conn.Create(&p).Error)
}

func march2025() DateRange { return MonthRange(2025, time.March) }

func TestSummarizeSalesMixedEncodings(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedSale(t, conn, "2025-03-01", "100", "40", nil)  // ISO, in range
	seedSale(t, conn, "31/03/2025", "200", "50", nil)  // localized, in range
	seedSale(t, conn, "2025-04-01", "999", "100", nil) // out of range
	seedSale(t, conn, "soon", "500", "0", nil)         // unparsable, excluded

	sum, err := svc.SummarizeSales(ctx, march2025(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.TotalRevenue.Equal(dec("300")))
	assert.True(t, sum.TotalCost.Equal(dec("90")))
	assert.True(t, sum.TotalProfit.Equal(dec("210")))
	require.Len(t, sum.Sales, 2)
	assert.Equal(t, "31/03/2025", sum.Sales[0].Date, "newest date first")
}

func TestSummarizeSalesClientFilter(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	maria := "Maria"
	seedSale(t, conn, "2025-03-05", "100", "0", &maria)
	seedSale(t, conn, "2025-03-06", "150", "0", nil)

	sum, err := svc.SummarizeSales(ctx, march2025(), "Maria")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.True(t, sum.TotalRevenue.Equal(dec("100")))
}

func TestSummarizeSalesReversedRangeIsEmpty(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedSale(t, conn, "2025-03-10", "100", "0", nil)

	r := DateRange{
		Start: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	}
	sum, err := svc.SummarizeSales(ctx, r, "")
	require.NoError(t, err)
	assert.Zero(t, sum.Count, "end before start matches nothing; bounds are never swapped")
}

func TestSummarizeSalesSameDayOrderedByIDDesc(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	first := seedSale(t, conn, "2025-03-10", "10", "0", nil)
	second := seedSale(t, conn, "10/03/2025", "20", "0", nil)

	sum, err := svc.SummarizeSales(ctx, march2025(), "")
	require.NoError(t, err)
	require.Len(t, sum.Sales, 2)
	assert.Equal(t, second.ID, sum.Sales[0].ID)
	assert.Equal(t, first.ID, sum.Sales[1].ID)
}

func TestSummarizePurchases(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedPurchase(t, conn, "2025-03-02", "120.50")
	seedPurchase(t, conn, "20/03/2025", "29.50")
	seedPurchase(t, conn, "2025-02-28", "80")
	seedPurchase(t, conn, "???", "999")

	sum, err := svc.SummarizePurchases(ctx, march2025())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.Total.Equal(dec("150")))
}

func TestGoalProgressScenario(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	goal := models.Goal{Year: 2025, Month: 3, RevenueTarget: dec("1000"), ProfitTarget: dec("500")}
	require.NoError(t, conn.Create(&goal).Error)
	seedSale(t, conn, "2025-03-10", "300", "100", nil)

	p, err := svc.GoalProgress(ctx, 2025, 3)
	require.NoError(t, err)
	assert.True(t, p.RevenueTarget.Equal(dec("1000")))
	assert.True(t, p.RevenueAchieved.Equal(dec("300")))
	assert.InDelta(t, 30.0, p.RevenuePercent, 1e-9)
	assert.True(t, p.ProfitAchieved.Equal(dec("200")))
	assert.InDelta(t, 40.0, p.ProfitPercent, 1e-9)
}

func TestGoalProgressWithoutGoal(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedSale(t, conn, "2025-03-10", "300", "100", nil)

	p, err := svc.GoalProgress(ctx, 2025, 3)
	require.NoError(t, err)
	assert.True(t, p.RevenueTarget.IsZero())
	assert.Zero(t, p.RevenuePercent, "zero target yields zero percent, not a division error")
	assert.True(t, p.RevenueAchieved.Equal(dec("300")))
}

func TestGoalProgressUncapped(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	goal := models.Goal{Year: 2025, Month: 3, RevenueTarget: dec("1000"), ProfitTarget: dec("500")}
	require.NoError(t, conn.Create(&goal).Error)
	seedSale(t, conn, "2025-03-05", "1500", "0", nil)

	p, err := svc.GoalProgress(ctx, 2025, 3)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, p.RevenuePercent, 1e-9, "the engine never caps the ratio")
}

func TestNetCashFlowCanBeNegative(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedSale(t, conn, "2025-03-10", "100", "60", nil) // profit 40
	seedPurchase(t, conn, "2025-03-12", "100")

	net, err := svc.NetCashFlow(ctx, march2025())
	require.NoError(t, err)
	assert.True(t, net.Equal(dec("-60")), "loss periods are returned as-is, got %s", net)
}

func TestLifetimeTotalsIgnoreDateText(t *testing.T) {
	svc, conn := newReportService(t)
	ctx := context.Background()

	seedSale(t, conn, "2025-03-10", "100", "60", nil)
	seedSale(t, conn, "soon", "50", "10", nil) // even unparsable dates count here
	seedPurchase(t, conn, "2025-03-12", "30")

	totals, err := svc.Lifetime(ctx)
	require.NoError(t, err)
	assert.True(t, totals.Revenue.Equal(dec("150")))
	assert.True(t, totals.Purchases.Equal(dec("30")))
}
