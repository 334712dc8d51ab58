package handlers

import (
	"errors"
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the setting service.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetSettings returns the raw key/value map alongside the typed view.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	all, err := h.settingService.GetAll()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingService.GetAll")
		utils.RespondInternalError(c, "Failed to fetch settings.")
		return
	}
	typed := models.ShopSettingsFromMap(all)
	c.JSON(http.StatusOK, gin.H{"settings": all, "shop": typed})
}

// UpdateSettings writes several keys at once; one bad key rejects the whole request.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	updated, err := h.settingService.Update(req.Settings)
	if err != nil {
		utils.LogError(err, "UpdateSettings: Error from settingService.Update")
		if errors.Is(err, services.ErrUnknownSetting) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unknown setting key.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid setting value.", err.Error()))
		} else {
			utils.RespondInternalError(c, "Failed to update settings.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": updated, "shop": models.ShopSettingsFromMap(updated)})
}

// SetShopStatus is the open/closed toggle.
func (h *SettingHandler) SetShopStatus(c *gin.Context) {
	var req models.ShopStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingService.SetShopOpen(*req.Open); err != nil {
		utils.LogError(err, "SetShopStatus: Error from settingService.SetShopOpen")
		utils.RespondInternalError(c, "Failed to change shop status.")
		return
	}
	status := models.ShopStatusClosed
	if *req.Open {
		status = models.ShopStatusOpen
	}
	c.JSON(http.StatusOK, gin.H{"shop_status": status, "shop_open": *req.Open})
}
