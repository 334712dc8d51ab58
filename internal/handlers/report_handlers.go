package handlers

import (
	"net/http"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetDashboard handles the admin dashboard figures.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		utils.LogError(err, "GetDashboard: Error from reportService.GetDashboardStats")
		utils.RespondInternalError(c, "Failed to build dashboard.")
		return
	}
	if stats.MostOrderedToday == nil {
		stats.MostOrderedToday = []models.TopItem{}
	}
	if stats.RecentOrders == nil {
		stats.RecentOrders = []models.Order{}
	}
	c.JSON(http.StatusOK, stats)
}
