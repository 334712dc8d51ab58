package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"streetbite_backend/internal/metrics"
	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Custom Errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidOrderType   = errors.New("invalid order type")
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
	maxOrderLines        = 100
)

// OrderService runs the order lifecycle: checkout behind the shop gate, status overwrite and soft delete.
type OrderService interface {
	CreateOrder(req models.CreateOrderPayload) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error) // active orders only, with total count
	GetOrderByID(orderID int64) (*models.Order, error)                 // includes soft-deleted orders
	UpdateOrderStatus(orderID int64, status string) (*models.Order, error)
	SoftDeleteOrder(orderID int64) error
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	catalogRepo repositories.CatalogRepository
	settings    SettingService
	db          *sql.DB // For managing transactions
	calendar    Calendar
	pricingMode string
	metrics     *metrics.Metrics
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	cr repositories.CatalogRepository,
	settings SettingService,
	db *sql.DB,
	calendar Calendar,
	pricingMode string,
	m *metrics.Metrics,
) OrderService {
	if pricingMode != models.PricingClient {
		pricingMode = models.PricingServer
	}
	return &orderService{
		orderRepo:   or,
		catalogRepo: cr,
		settings:    settings,
		db:          db,
		calendar:    calendar,
		pricingMode: pricingMode,
		metrics:     m,
	}
}

// CreateOrder consults the shop gate first; a closed shop writes nothing. The order row
// and all of its items are inserted in one transaction.
func (s *orderService) CreateOrder(req models.CreateOrderPayload) (*models.Order, error) {
	open, err := s.settings.IsShopOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		s.metrics.OrderRejected("shop_closed")
		return nil, ErrShopClosed
	}

	order, err := buildOrder(req)
	if err != nil {
		s.metrics.OrderRejected("invalid")
		return nil, err
	}
	lines, err := s.priceLines(order, req)
	if err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			s.metrics.OrderRejected("unknown_item")
		} else if errors.Is(err, ErrValidation) {
			s.metrics.OrderRejected("invalid")
		}
		return nil, err
	}

	order.CreatedAt = s.calendar.Now().UTC()
	order.UpdatedAt = order.CreatedAt

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	createdOrderID, err := s.orderRepo.CreateOrder(tx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = createdOrderID // Link item to the created order
		if _, err := s.orderRepo.CreateOrderItem(tx, &lines[i]); err != nil {
			return nil, fmt.Errorf("failed to create order item (menu_item_id: %d): %w", lines[i].MenuItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	s.metrics.OrderCreated(string(order.OrderType))
	log.Info().Int64("order_id", createdOrderID).Str("order_type", string(order.OrderType)).
		Float64("total_price", order.TotalPrice).Int("lines", len(lines)).Msg("Order created")

	return s.GetOrderByID(createdOrderID)
}

// buildOrder validates the request and produces the Pending order header (total filled in later).
func buildOrder(req models.CreateOrderPayload) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if len(req.Items) > maxOrderLines {
		return nil, fmt.Errorf("%w: order has more than %d lines", ErrValidation, maxOrderLines)
	}
	for i, line := range req.Items {
		if line.ID <= 0 {
			return nil, fmt.Errorf("%w: item %d has no valid id", ErrValidation, i)
		}
		if line.Quantity <= 0 || line.Quantity > models.MaxLineQuantity {
			return nil, fmt.Errorf("%w: quantity for item ID %d must be between 1 and %d", ErrValidation, line.ID, models.MaxLineQuantity)
		}
		if !models.ValidAmount(line.Price) {
			return nil, fmt.Errorf("%w: price for item ID %d is out of range", ErrValidation, line.ID)
		}
	}
	if req.TotalPrice != nil && !models.ValidAmount(*req.TotalPrice) {
		return nil, fmt.Errorf("%w: total_price is out of range", ErrValidation)
	}

	orderType, ok := models.ParseOrderType(req.OrderType)
	if !ok {
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidOrderType, req.OrderType, models.OrderTypePreBook, models.OrderTypeAtStall)
	}

	name, err := optionalField("name", req.Name, 100)
	if err != nil {
		return nil, err
	}
	phone, err := optionalField("phone", req.Phone, 20)
	if err != nil {
		return nil, err
	}
	arrival, err := optionalField("arrival_time", req.ArrivalTime, 50)
	if err != nil {
		return nil, err
	}

	return &models.Order{
		CustomerName:         name,
		CustomerPhone:        phone,
		OrderType:            orderType,
		EstimatedArrivalTime: arrival,
		Status:               models.OrderStatusPending,
		IsDeleted:            false,
	}, nil
}

// priceLines fills order.TotalPrice and returns the items to insert.
func (s *orderService) priceLines(order *models.Order, req models.CreateOrderPayload) ([]models.OrderItem, error) {
	lines := make([]models.OrderItem, 0, len(req.Items))

	if s.pricingMode == models.PricingClient {
		if req.TotalPrice == nil {
			return nil, fmt.Errorf("%w: total_price is required", ErrValidation)
		}
		for _, line := range req.Items {
			lines = append(lines, models.OrderItem{MenuItemID: line.ID, Quantity: line.Quantity, PriceAtTime: line.Price})
		}
		order.TotalPrice = *req.TotalPrice
		return lines, nil
	}

	var total float64
	var mismatched []int64
	for _, line := range req.Items {
		item, err := s.catalogRepo.GetItemByID(line.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, line.ID)
			}
			return nil, fmt.Errorf("failed to fetch menu item %d: %w", line.ID, err)
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s (id %d) is not available", ErrMenuItemNotFound, item.Name, item.ID)
		}
		if !moneyEqual(item.Price, line.Price) {
			mismatched = append(mismatched, line.ID)
		}
		orderItem := models.OrderItem{MenuItemID: item.ID, Quantity: line.Quantity, PriceAtTime: item.Price}
		lines = append(lines, orderItem)
		total += orderItem.Subtotal()
	}
	total = roundMoney(total)
	if !models.ValidAmount(total) {
		return nil, fmt.Errorf("%w: order total %.2f is out of range", ErrValidation, total)
	}

	totalMismatch := req.TotalPrice != nil && !moneyEqual(*req.TotalPrice, total)
	if len(mismatched) > 0 || totalMismatch {
		s.metrics.PriceMismatch()
		event := log.Warn().Ints64("mismatched_item_ids", mismatched).Float64("server_total", total)
		if req.TotalPrice != nil {
			event = event.Float64("client_total", *req.TotalPrice)
		}
		event.Msg("Client prices differ from catalog, using catalog prices")
	}

	order.TotalPrice = total
	return lines, nil
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	if filters.Status != nil && *filters.Status != "" {
		status, ok := models.ParseOrderStatus(*filters.Status)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, *filters.Status)
		}
		canonical := string(status)
		filters.Status = &canonical
	}
	if filters.Date != nil && *filters.Date != "" {
		day, err := s.calendar.ParseDay(*filters.Date)
		if err != nil {
			return nil, 0, err
		}
		from, to := s.calendar.DayBounds(day)
		filters.From, filters.To = &from, &to
	}
	filters.Page, filters.PageSize = NormalizeOrderPaging(filters.Page, filters.PageSize)

	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

// NormalizeOrderPaging applies the listing defaults: page 1, 20 per page, at most 100.
func NormalizeOrderPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultOrderPageSize
	}
	if pageSize > maxOrderPageSize {
		pageSize = maxOrderPageSize
	}
	return page, pageSize
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.Items = items
	return order, nil
}

// UpdateOrderStatus overwrites the status with no transition rules. Unknown values are rejected.
func (s *orderService) UpdateOrderStatus(orderID int64, status string) (*models.Order, error) {
	newStatus, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	if err := s.orderRepo.UpdateOrderStatus(s.db, orderID, newStatus, s.calendar.Now().UTC()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	s.metrics.StatusChanged(string(newStatus))
	return s.GetOrderByID(orderID)
}

// SoftDeleteOrder hides the order from listings and aggregates. Deleting twice is fine.
func (s *orderService) SoftDeleteOrder(orderID int64) error {
	if err := s.orderRepo.SoftDeleteOrder(s.db, orderID, s.calendar.Now().UTC()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.metrics.OrderSoftDeleted()
	return nil
}

func optionalField(name string, value *string, maxLen int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > maxLen {
		return nil, fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, name, maxLen)
	}
	return &trimmed, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
