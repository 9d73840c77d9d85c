package handlers

import (
	"net/http"

	"adops_backend/internal/services"
	"adops_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	*BaseHandler
	campaignService services.CampaignService
}

func NewCampaignHandler(base *BaseHandler, campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		BaseHandler:     base,
		campaignService: campaignService,
	}
}

func (h *CampaignHandler) RegisterRoutes(r *gin.RouterGroup) {
	campaigns := r.Group("/campaigns")
	{
		campaigns.POST("", h.Create)
		campaigns.GET("", h.List)
		campaigns.GET("/:id", h.Get)
		campaigns.PUT("/:id", h.Update)
		campaigns.PATCH("/:id/status", h.UpdateStatus)
		campaigns.DELETE("/:id", h.Delete)
	}
}

// RegisterAdminRoutes mounts the dashboard stats endpoint.
func (h *CampaignHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Stats)
}

func (h *CampaignHandler) Stats(c *gin.Context) {
	counts, err := h.campaignService.StatusCounts()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": counts})
}

func (h *CampaignHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCampaignRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.OwnerID = userID

	resp, err := h.campaignService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	resp, err := h.campaignService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListCampaignsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	items, total, err := h.campaignService.List(&req, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

func (h *CampaignHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCampaignRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campaignService.Update(c.Param("id"), userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCampaignStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campaignService.UpdateStatus(c.Param("id"), userID, h.GetRole(c), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Param("id"), userID, h.GetRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}
