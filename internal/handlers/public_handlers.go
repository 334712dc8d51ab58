package handlers

import (
	"errors"
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the customer-facing storefront.
type PublicHandler struct {
	settingService  services.SettingService
	catalogService  services.CatalogService
	orderService    services.OrderService
	pageViewService services.PageViewService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(ss services.SettingService, cs services.CatalogService, os services.OrderService, pvs services.PageViewService) *PublicHandler {
	return &PublicHandler{settingService: ss, catalogService: cs, orderService: os, pageViewService: pvs}
}

// Landing counts the visit and returns the shop details.
func (h *PublicHandler) Landing(c *gin.Context) {
	if err := h.pageViewService.RecordVisit(); err != nil {
		// a lost hit is not worth failing the page for
		utils.LogError(err, "Landing: Failed to record page view")
	}

	settings, err := h.settingService.GetShopSettings()
	if err != nil {
		utils.LogError(err, "Landing: Error from settingService.GetShopSettings")
		utils.RespondInternalError(c, "Failed to load shop details.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings, "shop_open": settings.ShopOpen})
}

// Menu lists available items, optionally narrowed to one category.
func (h *PublicHandler) Menu(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category"); raw != "" {
		id, err := utils.StrToPositiveID(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid category ID format.", err.Error()))
			return
		}
		categoryID = &id
	}

	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.LogError(err, "Menu: Error from catalogService.ListCategories")
		utils.RespondInternalError(c, "Failed to load menu.")
		return
	}
	items, err := h.catalogService.ListAvailableItems(categoryID)
	if err != nil {
		utils.LogError(err, "Menu: Error from catalogService.ListAvailableItems")
		utils.RespondInternalError(c, "Failed to load menu.")
		return
	}
	open, err := h.settingService.IsShopOpen()
	if err != nil {
		utils.LogError(err, "Menu: Error from settingService.IsShopOpen")
		utils.RespondInternalError(c, "Failed to load menu.")
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"categories":        categories,
		"items":             items,
		"selected_category": categoryID,
		"shop_open":         open,
	})
}

// OrderChoice is the entry to checkout; it is refused while the shop is closed.
func (h *PublicHandler) OrderChoice(c *gin.Context) {
	settings, err := h.settingService.GetShopSettings()
	if err != nil {
		utils.LogError(err, "OrderChoice: Error from settingService.GetShopSettings")
		utils.RespondInternalError(c, "Failed to load shop details.")
		return
	}
	if !settings.ShopOpen {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeShopClosed, services.ErrShopClosed.Error(), ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":    settings,
		"order_types": []models.OrderType{models.OrderTypePreBook, models.OrderTypeAtStall},
	})
}

// CreateOrder handles the storefront checkout.
func (h *PublicHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if req.Items == nil {
		utils.RespondValidationFailed(c, "items is required")
		return
	}

	order, err := h.orderService.CreateOrder(req)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		if errors.Is(err, services.ErrShopClosed) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeShopClosed, services.ErrShopClosed.Error(), ""))
		} else if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrInvalidOrderType) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order.", err.Error()))
		} else if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more menu items not found or unavailable.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to place order.")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.ID})
}

// OrderSuccess shows a placed order with the stall phone for the WhatsApp link.
func (h *PublicHandler) OrderSuccess(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err == nil && order.IsDeleted {
		err = services.ErrOrderNotFound
	}
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", ""))
		} else {
			utils.LogError(err, "OrderSuccess: Error from orderService.GetOrderByID for ID "+utils.Int64ToStr(orderID))
			utils.RespondInternalError(c, "Failed to fetch order.")
		}
		return
	}

	settings, err := h.settingService.GetShopSettings()
	if err != nil {
		utils.LogError(err, "OrderSuccess: Error from settingService.GetShopSettings")
		utils.RespondInternalError(c, "Failed to load shop details.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":          order,
		"whatsapp_phone": utils.DigitsOnly(settings.Phone),
		"whatsapp_msg":   settings.WhatsAppMsg,
		"upi_id":         settings.UPIID,
	})
}
