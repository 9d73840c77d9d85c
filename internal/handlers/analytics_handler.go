package handlers

import (
	"net/http"

	"adops_backend/internal/metrics"
	"adops_backend/internal/services"
	"adops_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/campaigns/:id/analytics", h.CampaignAnalytics)
}

// RegisterAdminRoutes mounts the ingestion endpoint; the route group is
// expected to carry an admin role check.
func (h *AnalyticsHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/campaigns/:id/records", h.IngestRecords)
}

func (h *AnalyticsHandler) CampaignAnalytics(c *gin.Context) {
	var query dto.AnalyticsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.analyticsService.CampaignAnalytics(c.Request.Context(), c.Param("id"), query.Range)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	metrics.ObserveAnalyticsRun(resp.Range)
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) IngestRecords(c *gin.Context) {
	var req dto.IngestRecordsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	written, err := h.analyticsService.IngestRecords(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	metrics.AddIngestedRecords(written)
	c.JSON(http.StatusOK, gin.H{"written": written})
}
