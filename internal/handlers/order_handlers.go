package handlers

import (
	"errors"
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service for the admin order screens.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// GetOrders lists active orders, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}
	if filters.Page < 0 || filters.PageSize < 0 {
		utils.RespondValidationFailed(c, "page and page_size must be positive integers")
		return
	}
	filters.Page, filters.PageSize = services.NormalizeOrderPaging(filters.Page, filters.PageSize)

	orders, totalCount, err := h.orderService.GetOrders(filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status filter.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format. Use YYYY-MM-DD.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to fetch orders.")
		}
		return
	}

	if orders == nil { // Ensure we return an empty list instead of null if no orders found
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      orders,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetOrderByID returns one order with its items, including soft-deleted orders.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID for ID "+utils.Int64ToStr(orderID))
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to fetch order.")
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus overwrites the status of an order.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOrderStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updatedOrder, err := h.orderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus for ID "+utils.Int64ToStr(orderID))
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidOrderStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to update order status.")
		}
		return
	}
	c.JSON(http.StatusOK, updatedOrder)
}

// DeleteOrder soft-deletes an order.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order")
	if !ok {
		return
	}

	if err := h.orderService.SoftDeleteOrder(orderID); err != nil {
		utils.LogError(err, "DeleteOrder: Error from orderService.SoftDeleteOrder for ID "+utils.Int64ToStr(orderID))
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found to delete.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to delete order.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
