package models

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// OrderType distinguishes orders placed ahead of arrival from orders placed at the stall.
type OrderType string

const (
	OrderTypePreBook OrderType = "PreBook"
	OrderTypeAtStall OrderType = "AtStall"
)

// ParseOrderType accepts the canonical values as well as the storefront labels
// ("Pre-book", "At Stall"), case and punctuation insensitive.
func ParseOrderType(s string) (OrderType, bool) {
	switch squash(s) {
	case "prebook":
		return OrderTypePreBook, true
	case "atstall":
		return OrderTypeAtStall, true
	}
	return "", false
}

// OrderStatus is a plain enum; any status may overwrite any other.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ParseOrderStatus is case insensitive.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch squash(s) {
	case "pending":
		return OrderStatusPending, true
	case "completed":
		return OrderStatusCompleted, true
	case "cancelled", "canceled":
		return OrderStatusCancelled, true
	}
	return "", false
}

func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Order is a customer checkout. TotalPrice is a snapshot taken at creation.
type Order struct {
	ID                   int64       `json:"id"`
	CustomerName         *string     `json:"customer_name,omitempty"`
	CustomerPhone        *string     `json:"customer_phone,omitempty"`
	OrderType            OrderType   `json:"order_type"`
	EstimatedArrivalTime *string     `json:"estimated_arrival_time,omitempty"`
	TotalPrice           float64     `json:"total_price"`
	Status               OrderStatus `json:"status"`
	IsDeleted            bool        `json:"is_deleted"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
	Items                []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. PriceAtTime is never recomputed after creation.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	MenuItemID  int64   `json:"menu_item_id"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`

	// MenuItemName is filled when the menu item still exists.
	MenuItemName *string `json:"menu_item_name,omitempty"`
}

// Pricing modes. Server re-prices every line from the catalog; client trusts the submitted prices.
const (
	PricingServer = "server"
	PricingClient = "client"
)

// MaxAmount is the largest value the NUMERIC(10,2) money columns hold.
const MaxAmount = 99999999.99

// MaxLineQuantity caps the quantity of a single order line.
const MaxLineQuantity = 1000

// ValidAmount reports whether v is a finite, non-negative amount that fits the money columns.
func ValidAmount(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0 && v <= MaxAmount
}

// Subtotal is quantity times the snapshot price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.PriceAtTime
}

// CreateOrderPayload is the checkout body posted by the storefront.
type CreateOrderPayload struct {
	Name        *string                  `json:"name"`
	Phone       *string                  `json:"phone"`
	OrderType   string                   `json:"order_type"`
	ArrivalTime *string                  `json:"arrival_time"`
	TotalPrice  *float64                 `json:"total_price"`
	Items       []CreateOrderItemPayload `json:"items"`
}

type CreateOrderItemPayload struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type UpdateOrderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// OrderFilters defines the available filters for querying orders.
// This struct is used by both the service and repository layers.
type OrderFilters struct {
	Status   *string `form:"status"`
	Date     *string `form:"date"` // YYYY-MM-DD in the configured timezone
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`

	// From/To are resolved from Date by the service; the repository only sees UTC bounds.
	From *time.Time `form:"-"`
	To   *time.Time `form:"-"`
}
