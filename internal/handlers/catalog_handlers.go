package handlers

import (
	"errors"
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service for category and menu item management.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// respondCatalogError maps catalog service errors onto the API envelope.
func respondCatalogError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidImage):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed.", err.Error()))
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", err.Error()))
	case errors.Is(err, services.ErrMenuItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
	case errors.Is(err, services.ErrCategoryNameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category name already exists.", err.Error()))
	default:
		utils.RespondInternalError(c, "Failed to "+action+".")
	}
}

// --- Category Handlers ---

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: Error from catalogService.ListCategories")
		respondCatalogError(c, err, "fetch categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryPayload
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(req.Name)
	if err != nil {
		utils.LogError(err, "CreateCategory: Error from catalogService.CreateCategory")
		respondCatalogError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category")
	if !ok {
		return
	}
	var req models.CategoryPayload
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.catalogService.RenameCategory(categoryID, req.Name)
	if err != nil {
		utils.LogError(err, "UpdateCategory: Error from catalogService.RenameCategory for ID "+utils.Int64ToStr(categoryID))
		respondCatalogError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes the category together with all of its menu items.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(categoryID); err != nil {
		utils.LogError(err, "DeleteCategory: Error from catalogService.DeleteCategory for ID "+utils.Int64ToStr(categoryID))
		respondCatalogError(c, err, "delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category and its items deleted successfully"})
}

// --- Menu Item Handlers ---

// GetItems lists every menu item, available or not.
func (h *CatalogHandler) GetItems(c *gin.Context) {
	items, err := h.catalogService.ListItems()
	if err != nil {
		utils.LogError(err, "GetItems: Error from catalogService.ListItems")
		respondCatalogError(c, err, "fetch menu items")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetItemByID(c *gin.Context) {
	itemID, ok := parseIDParam(c, "menu item")
	if !ok {
		return
	}
	item, err := h.catalogService.GetItem(itemID)
	if err != nil {
		utils.LogError(err, "GetItemByID: Error from catalogService.GetItem for ID "+utils.Int64ToStr(itemID))
		respondCatalogError(c, err, "fetch menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem accepts JSON, or a multipart form with an optional "image" file.
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req models.CreateMenuItemPayload
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	image, err := optionalImage(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid image upload.", err.Error()))
		return
	}

	item, err := h.catalogService.CreateItem(req, image)
	if err != nil {
		utils.LogError(err, "CreateItem: Error from catalogService.CreateItem")
		respondCatalogError(c, err, "create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "menu item")
	if !ok {
		return
	}
	var req models.UpdateMenuItemPayload
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	image, err := optionalImage(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid image upload.", err.Error()))
		return
	}

	item, err := h.catalogService.UpdateItem(itemID, req, image)
	if err != nil {
		utils.LogError(err, "UpdateItem: Error from catalogService.UpdateItem for ID "+utils.Int64ToStr(itemID))
		respondCatalogError(c, err, "update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "menu item")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteItem(itemID); err != nil {
		utils.LogError(err, "DeleteItem: Error from catalogService.DeleteItem for ID "+utils.Int64ToStr(itemID))
		respondCatalogError(c, err, "delete menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
