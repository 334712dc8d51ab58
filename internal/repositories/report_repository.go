package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"streetbite_backend/internal/models"
)

// ReportRepository holds the read-only aggregate queries behind the dashboard.
// All time bounds are half-open [from, to) and compared in UTC.
type ReportRepository interface {
	CountMenuItems() (int64, error)
	CountCategories() (int64, error)
	CountActiveOrders() (int64, error)
	SumSales(from, to time.Time) (float64, error)
	TopItems(from, to time.Time, limit int) ([]models.TopItem, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) count(query, what string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting %s: %v", ErrDatabaseError, what, err)
	}
	return n, nil
}

func (r *reportRepository) CountMenuItems() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM menu_items`, "menu items")
}

func (r *reportRepository) CountCategories() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM categories`, "categories")
}

func (r *reportRepository) CountActiveOrders() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM orders o WHERE `+activeOrders, "orders")
}

// SumSales totals pending and completed active orders created in [from, to).
func (r *reportRepository) SumSales(from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(o.total_price), 0) FROM orders o
	          WHERE ` + activeOrders + ` AND ` + countsAsSale + `
	            AND o.created_at >= $1 AND o.created_at < $2`
	var total float64
	if err := r.db.QueryRow(query, from.UTC(), to.UTC()).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing sales: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// TopItems ranks menu items by quantity sold in [from, to), cancelled orders excluded.
// Ties go to the lower menu item id.
func (r *reportRepository) TopItems(from, to time.Time, limit int) ([]models.TopItem, error) {
	query := fmt.Sprintf(`
		SELECT mi.id, mi.name, mi.image_path, SUM(oi.quantity) AS qty
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE %s AND o.status <> '%s'
		  AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY mi.id, mi.name, mi.image_path
		ORDER BY qty DESC, mi.id ASC
		LIMIT $3`, activeOrders, models.OrderStatusCancelled)

	rows, err := r.db.Query(query, from.UTC(), to.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.TopItem{}
	for rows.Next() {
		var it models.TopItem
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.ImagePath, &it.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning top item: %v", ErrDatabaseError, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top items: %v", ErrDatabaseError, err)
	}
	return items, nil
}
