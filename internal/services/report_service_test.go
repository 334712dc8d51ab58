package services

import (
	"testing"
	"time"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTrendHeights(t *testing.T) {
	empty := make([]models.SalesTrendDay, 7)
	applyTrendHeights(empty)
	for _, d := range empty {
		assert.Zero(t, d.Height)
	}

	trend := []models.SalesTrendDay{{Value: 0}, {Value: 25}, {Value: 100}, {Value: 50}}
	applyTrendHeights(trend)
	assert.Equal(t, []int{0, 25, 100, 50}, []int{trend[0].Height, trend[1].Height, trend[2].Height, trend[3].Height})
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.setShopOpen(t, true)
	cat := f.addCategory(t, "Chaat")
	tea := f.addItem(t, cat, "Tea", 20)
	samosa := f.addItem(t, cat, "Samosa", 15)

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	today := NewCalendarWithClock(time.UTC, fixedClock(now))
	twoDaysAgo := NewCalendarWithClock(time.UTC, fixedClock(now.AddDate(0, 0, -2)))
	lastMonth := NewCalendarWithClock(time.UTC, fixedClock(now.AddDate(0, 0, -45)))

	place := func(cal Calendar, itemID int64, qty int) *models.Order {
		svc := NewOrderService(f.orderRepo, f.catalogRepo, f.settings, f.db, cal, models.PricingServer, nil)
		order, err := svc.CreateOrder(models.CreateOrderPayload{
			OrderType: "AtStall",
			Items:     []models.CreateOrderItemPayload{{ID: itemID, Quantity: qty}},
		})
		require.NoError(t, err)
		return order
	}
	orders := NewOrderService(f.orderRepo, f.catalogRepo, f.settings, f.db, today, models.PricingServer, nil)

	old := place(twoDaysAgo, tea, 2) // 40
	_, err := orders.UpdateOrderStatus(old.ID, "Completed")
	require.NoError(t, err)
	place(lastMonth, tea, 10)            // outside the 30 day window
	place(today, tea, 1)                 // 20
	cancelled := place(today, samosa, 4) // 60, cancelled
	deleted := place(today, samosa, 3)   // 45, soft-deleted
	_, err = orders.UpdateOrderStatus(cancelled.ID, "Cancelled")
	require.NoError(t, err)
	require.NoError(t, orders.SoftDeleteOrder(deleted.ID))

	views := NewPageViewService(repositories.NewPageViewRepository(f.db), today, nil)
	require.NoError(t, views.RecordVisit())
	require.NoError(t, views.RecordVisit())

	reports := NewReportService(
		repositories.NewReportRepository(f.db),
		f.orderRepo,
		repositories.NewPageViewRepository(f.db),
		today,
	)
	stats, err := reports.GetDashboardStats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalItems)
	assert.EqualValues(t, 1, stats.TotalCategories)
	assert.EqualValues(t, 4, stats.TotalOrders)
	assert.InDelta(t, 20.0, stats.TodaySales, 0.001)
	assert.InDelta(t, 60.0, stats.ThirtyDaySales, 0.001)
	assert.EqualValues(t, 2, stats.TodayViews)

	require.Len(t, stats.SalesTrend, 7)
	assert.Equal(t, "2026-10-10", stats.SalesTrend[0].Date)
	assert.Equal(t, "2026-10-16", stats.SalesTrend[6].Date)
	assert.Equal(t, "Fri", stats.SalesTrend[6].Label)
	assert.InDelta(t, 40.0, stats.SalesTrend[4].Value, 0.001)
	assert.Equal(t, 100, stats.SalesTrend[4].Height)
	assert.Equal(t, 50, stats.SalesTrend[6].Height)
	assert.Zero(t, stats.SalesTrend[0].Height)

	require.Len(t, stats.MostOrderedToday, 1)
	assert.Equal(t, tea, stats.MostOrderedToday[0].MenuItemID)
	assert.EqualValues(t, 1, stats.MostOrderedToday[0].Quantity)

	require.Len(t, stats.RecentOrders, 4)
	for _, o := range stats.RecentOrders {
		assert.NotEqual(t, deleted.ID, o.ID)
	}
}

func TestDashboardStats_EmptyShop(t *testing.T) {
	f := newFixture(t)
	reports := NewReportService(
		repositories.NewReportRepository(f.db),
		f.orderRepo,
		repositories.NewPageViewRepository(f.db),
		f.calendar,
	)
	stats, err := reports.GetDashboardStats()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TodaySales)
	assert.Zero(t, stats.TodayViews)
	assert.Empty(t, stats.MostOrderedToday)
	require.Len(t, stats.SalesTrend, 7)
	for _, d := range stats.SalesTrend {
		assert.Zero(t, d.Height)
	}
}
