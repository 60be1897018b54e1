// Media API handlers
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/service"
)

// MediaHandler handles media asset requests
type MediaHandler struct {
	media  *service.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup) {
	media := r.Group("/media")
	{
		media.POST("/paste/:companyId", h.Paste)
		media.GET("/company/:companyId", h.ListForCompany)
		media.GET(":id", h.Get)
		media.GET(":id/download", h.Download)
		media.PUT(":id", h.Update)
		media.DELETE(":id", h.Delete)
		media.POST(":id/extract", h.Extract)
	}
}

// Paste registers pasted text content as a media asset
// POST /api/media/paste/:companyId
func (h *MediaHandler) Paste(c *gin.Context) {
	companyID := c.Param("companyId")

	var req models.PasteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	asset, err := h.media.PasteContent(companyID, &req, requestingUserID(c))
	if err != nil {
		h.writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// ListForCompany lists all media assets for a company
// GET /api/media/company/:companyId
func (h *MediaHandler) ListForCompany(c *gin.Context) {
	companyID := c.Param("companyId")
	assets, err := h.media.ListAssets(companyID)
	if err != nil {
		h.logger.Error("Failed to list media assets", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// Get returns a single media asset
// GET /api/media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	asset, err := h.media.GetAsset(c.Param("id"))
	if err != nil {
		h.writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Download serves the backing file inline
// GET /api/media/:id/download
func (h *MediaHandler) Download(c *gin.Context) {
	asset, err := h.media.GetAsset(c.Param("id"))
	if err != nil {
		h.writeMediaError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", asset.OriginalFilename))
	c.Header("Cache-Control", "no-cache")
	c.File(asset.FilePath)
}

// Update applies a partial metadata update
// PUT /api/media/:id
func (h *MediaHandler) Update(c *gin.Context) {
	var req models.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	asset, err := h.media.UpdateAsset(c.Param("id"), &req)
	if err != nil {
		h.writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Delete removes a media asset and its backing file
// DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.media.DeleteAsset(c.Param("id")); err != nil {
		h.writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Extract re-runs text extraction against the backing file
// POST /api/media/:id/extract
func (h *MediaHandler) Extract(c *gin.Context) {
	asset, err := h.media.ReextractText(c.Param("id"))
	if err != nil {
		h.writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "hasText": asset.ExtractedText != ""})
}

// writeMediaError maps media-service errors onto HTTP responses
func (h *MediaHandler) writeMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	case errors.Is(err, service.ErrMediaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Media file not found"})
	case errors.Is(err, service.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found on disk"})
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Media request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
