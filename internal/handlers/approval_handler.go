package handlers

import (
	"net/http"

	"adops_backend/internal/auth"
	"adops_backend/internal/services"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	*BaseHandler
	approvalService services.ApprovalService
}

func NewApprovalHandler(base *BaseHandler, approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		BaseHandler:     base,
		approvalService: approvalService,
	}
}

func (h *ApprovalHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/campaigns/:id/approvals", h.Request)

	approvals := r.Group("/approvals")
	{
		approvals.GET("", h.List)
		approvals.GET("/:id", h.Get)
		approvals.POST("/:id/decision", h.Decide)
	}
}

func (h *ApprovalHandler) Request(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.approvalService.Request(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ApprovalHandler) Get(c *gin.Context) {
	resp, err := h.approvalService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApprovalHandler) List(c *gin.Context) {
	var req dto.ListApprovalsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	items, total, err := h.approvalService.List(&req)
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

func (h *ApprovalHandler) Decide(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if !auth.HasPermission(string(h.GetRole(c)), "approvals:decide") {
		h.HandleServiceError(c, apperrors.NewForbiddenError("You do not have permission to decide approval requests"))
		return
	}

	var req dto.DecideApprovalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.approvalService.Decide(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
