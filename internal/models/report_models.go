package models

// SalesTrendDay is one bar of the 7-day chart. Height is relative to the best day (0..100).
type SalesTrendDay struct {
	Date   string  `json:"date"`  // YYYY-MM-DD
	Label  string  `json:"label"` // Mon, Tue, ...
	Value  float64 `json:"value"`
	Height int     `json:"height"`
}

// TopItem is a best-seller row for today.
type TopItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	ImagePath  *string `json:"image_path,omitempty"`
	Quantity   int64   `json:"quantity"`
}

// DashboardStats holds key metrics for the admin dashboard.
type DashboardStats struct {
	TotalItems       int64           `json:"total_items"`
	TotalCategories  int64           `json:"total_categories"`
	TotalOrders      int64           `json:"total_orders"`
	TodaySales       float64         `json:"today_sales"`
	ThirtyDaySales   float64         `json:"thirty_day_sales"`
	SalesTrend       []SalesTrendDay `json:"sales_trend"`
	MostOrderedToday []TopItem       `json:"most_ordered_today"`
	TodayViews       int64           `json:"today_views"`
	RecentOrders     []Order         `json:"recent_orders"`
}
