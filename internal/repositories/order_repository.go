package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetbite_backend/internal/models"
)

// activeOrders is the soft-delete filter. Every listing and aggregate over orders goes through it.
const activeOrders = "o.is_deleted = FALSE"

// countsAsSale limits revenue figures to orders that were not cancelled.
var countsAsSale = fmt.Sprintf("o.status IN ('%s', '%s')", models.OrderStatusPending, models.OrderStatusCompleted)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// Order methods
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(orderID int64) (*models.Order, error) // includes soft-deleted orders
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error) // active orders, total count, error
	UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus models.OrderStatus, updatedAt time.Time) error
	SoftDeleteOrder(executor SQLExecutor, orderID int64, updatedAt time.Time) error

	// OrderItem methods
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// --- Order Methods ---

const orderColumns = `o.id, o.customer_name, o.customer_phone, o.order_type, o.estimated_arrival_time,
	o.total_price, o.status, o.is_deleted, o.created_at, o.updated_at`

func scanOrder(s scanner, o *models.Order) error {
	return s.Scan(
		&o.ID, &o.CustomerName, &o.CustomerPhone, &o.OrderType, &o.EstimatedArrivalTime,
		&o.TotalPrice, &o.Status, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (customer_name, customer_phone, order_type, estimated_arrival_time,
	             total_price, status, is_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	err := executor.QueryRow(query,
		order.CustomerName, order.CustomerPhone, order.OrderType, order.EstimatedArrivalTime,
		order.TotalPrice, order.Status, order.IsDeleted, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	if err := scanOrder(r.db.QueryRow(query, orderID), order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}

	conditions := []string{activeOrders}
	var args []interface{}
	argCounter := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d", argCounter))
		args = append(args, filters.From.UTC())
		argCounter++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("o.created_at < $%d", argCounter))
		args = append(args, filters.To.UTC())
		argCounter++
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	totalCount := 0
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders o`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%w: counting orders: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders o`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY o.created_at DESC, o.id DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 1 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

// UpdateOrderStatus overwrites the status unconditionally. Writing the current value again succeeds.
func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus models.OrderStatus, updatedAt time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, newStatus, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return requireAffected(result, "updating order status")
}

// SoftDeleteOrder flags the order; the row and its items stay for audit.
func (r *orderRepository) SoftDeleteOrder(executor SQLExecutor, orderID int64, updatedAt time.Time) error {
	query := `UPDATE orders SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: soft deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return requireAffected(result, "soft deleting order")
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items (order_id, menu_item_id, quantity, price_at_time)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := executor.QueryRow(query, item.OrderID, item.MenuItemID, item.Quantity, item.PriceAtTime).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.price_at_time, mi.name
		FROM order_items oi
		LEFT JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var itemName sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.PriceAtTime, &itemName); err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		if itemName.Valid {
			name := itemName.String
			item.MenuItemName = &name
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}
