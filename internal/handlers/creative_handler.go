package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"adops_backend/internal/config"
	"adops_backend/internal/services"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CreativeHandler struct {
	*BaseHandler
	creativeService services.CreativeService
	uploadCfg       config.UploadConfig
}

func NewCreativeHandler(base *BaseHandler, creativeService services.CreativeService, uploadCfg config.UploadConfig) *CreativeHandler {
	return &CreativeHandler{
		BaseHandler:     base,
		creativeService: creativeService,
		uploadCfg:       uploadCfg,
	}
}

func (h *CreativeHandler) RegisterRoutes(r *gin.RouterGroup) {
	creatives := r.Group("/creatives")
	{
		creatives.POST("", h.Create)
		creatives.GET("", h.List)
		creatives.GET("/:id", h.Get)
		creatives.PUT("/:id", h.Update)
		creatives.DELETE("/:id", h.Delete)
		creatives.POST("/:id/asset", h.UploadAsset)
		creatives.GET("/:id/asset", h.DownloadAsset)
		creatives.POST("/:id/attach/:campaignID", h.Attach)
		creatives.POST("/:id/detach", h.Detach)
	}
}

func (h *CreativeHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCreativeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	req.OwnerID = userID

	resp, err := h.creativeService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CreativeHandler) Get(c *gin.Context) {
	resp, err := h.creativeService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CreativeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListCreativesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	req.Page, req.PageSize = ParsePagination(c)

	items, total, err := h.creativeService.List(&req, userID)
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

func (h *CreativeHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCreativeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.creativeService.Update(c.Param("id"), userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CreativeHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creativeService.Delete(c.Param("id"), userID, h.GetRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creative deleted"})
}

func (h *CreativeHandler) UploadAsset(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file in form data"))
		return
	}

	if fileHeader.Size > h.uploadCfg.MaxSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("File too large: max %d bytes", h.uploadCfg.MaxSize)))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !slices.Contains(h.uploadCfg.AllowedTypes, mimeType) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported file type: "+mimeType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.creativeService.UploadAsset(
		c.Param("id"), userID, h.GetRole(c),
		fileHeader.Filename, mimeType, fileHeader.Size, file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CreativeHandler) DownloadAsset(c *gin.Context) {
	reader, mimeType, err := h.creativeService.OpenAsset(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, mimeType, reader, nil)
}

func (h *CreativeHandler) Attach(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creativeService.Attach(c.Param("id"), c.Param("campaignID"), userID, h.GetRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creative attached"})
}

func (h *CreativeHandler) Detach(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.creativeService.Detach(c.Param("id"), userID, h.GetRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creative detached"})
}
