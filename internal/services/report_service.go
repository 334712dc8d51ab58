package services

import (
	"fmt"
	"time"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"
)

const (
	trendDays       = 7
	salesWindowDays = 30
	topItemsLimit   = 5
	recentOrders    = 5
)

// ReportService assembles the admin dashboard. Every figure excludes soft-deleted orders.
type ReportService interface {
	GetDashboardStats() (*models.DashboardStats, error)
}

type reportService struct {
	reportRepo   repositories.ReportRepository
	orderRepo    repositories.OrderRepository
	pageViewRepo repositories.PageViewRepository
	calendar     Calendar
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	rr repositories.ReportRepository,
	or repositories.OrderRepository,
	pvr repositories.PageViewRepository,
	calendar Calendar,
) ReportService {
	return &reportService{reportRepo: rr, orderRepo: or, pageViewRepo: pvr, calendar: calendar}
}

func (s *reportService) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var err error

	if stats.TotalItems, err = s.reportRepo.CountMenuItems(); err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}
	if stats.TotalCategories, err = s.reportRepo.CountCategories(); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if stats.TotalOrders, err = s.reportRepo.CountActiveOrders(); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	today := s.calendar.Today()
	todayStart, tomorrowStart := s.calendar.DayBounds(today)

	if stats.TodaySales, err = s.reportRepo.SumSales(todayStart, tomorrowStart); err != nil {
		return nil, fmt.Errorf("failed to sum today's sales: %w", err)
	}
	windowStart := s.calendar.AddDays(today, -salesWindowDays).UTC()
	if stats.ThirtyDaySales, err = s.reportRepo.SumSales(windowStart, tomorrowStart); err != nil {
		return nil, fmt.Errorf("failed to sum 30 day sales: %w", err)
	}

	if stats.SalesTrend, err = s.salesTrend(today); err != nil {
		return nil, err
	}

	if stats.MostOrderedToday, err = s.reportRepo.TopItems(todayStart, tomorrowStart, topItemsLimit); err != nil {
		return nil, fmt.Errorf("failed to rank today's items: %w", err)
	}

	if stats.TodayViews, err = s.pageViewRepo.CountForDay(s.calendar.DayKey(today)); err != nil {
		return nil, fmt.Errorf("failed to read today's views: %w", err)
	}

	recent, _, err := s.orderRepo.GetOrders(models.OrderFilters{Page: 1, PageSize: recentOrders})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	stats.RecentOrders = recent

	return stats, nil
}

// salesTrend returns the last seven days, oldest first, ending today.
func (s *reportService) salesTrend(today time.Time) ([]models.SalesTrendDay, error) {
	trend := make([]models.SalesTrendDay, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := s.calendar.AddDays(today, -i)
		from, to := s.calendar.DayBounds(day)
		value, err := s.reportRepo.SumSales(from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to sum sales for %s: %w", s.calendar.DayKey(day), err)
		}
		trend = append(trend, models.SalesTrendDay{
			Date:  s.calendar.DayKey(day),
			Label: day.Format("Mon"),
			Value: value,
		})
	}
	applyTrendHeights(trend)
	return trend, nil
}

// applyTrendHeights scales each bar against the best day (100). All bars are 0 when nothing sold.
func applyTrendHeights(trend []models.SalesTrendDay) {
	var maxValue float64
	for _, d := range trend {
		if d.Value > maxValue {
			maxValue = d.Value
		}
	}
	for i := range trend {
		if maxValue > 0 {
			trend[i].Height = int(trend[i].Value / maxValue * 100)
		} else {
			trend[i].Height = 0
		}
	}
}
