package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetMetrics returns task metrics for the caller, or for everyone with ?scope=team
func (h *AnalyticsHandler) GetMetrics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := &userID
	if c.Query("scope") == "team" {
		filter = nil
	}

	metrics, err := h.analyticsService.TaskMetrics(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetInsights returns the dashboard summary
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.DashboardInsights(c.Request.Context()))
}
