package handlers

import (
	"fmt"
	"net/http"

	"adops_backend/internal/services"
	"adops_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	*BaseHandler
	exportService services.ExportService
}

func NewExportHandler(base *BaseHandler, exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   base,
		exportService: exportService,
	}
}

func (h *ExportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/campaigns/:id/analytics/export", h.Export)
}

func (h *ExportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
