// Company API handlers
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/service"
)

// CompanyHandler handles company CRUD requests
type CompanyHandler struct {
	records *service.RecordService
	media   *service.MediaService
	logger  *slog.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(records *service.RecordService, media *service.MediaService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{records: records, media: media, logger: logger}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies")
	{
		companies.GET("", h.List)
		companies.POST("", h.Create)
		companies.GET(":id", h.Get)
		companies.PUT(":id", h.Update)
		companies.DELETE(":id", h.Delete)
	}
}

// List returns companies, optionally filtered by type, status or a search term
// GET /api/companies
func (h *CompanyHandler) List(c *gin.Context) {
	filter := service.CompanyFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	companies, err := h.records.ListCompanies(filter)
	if err != nil {
		h.logger.Error("Failed to list companies", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, companies)
}

// Create creates a new company
// POST /api/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and type are required"})
		return
	}

	company, err := h.records.CreateCompany(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create company", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, company)
}

// Get returns a single company with its content counts and record lists
// GET /api/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id := c.Param("id")

	company, err := h.records.GetCompanyWithStats(id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		h.logger.Error("Failed to get company", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	transcripts, err := h.records.ListTranscripts(id)
	if err != nil {
		h.logger.Error("Failed to list transcripts", "company_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	emails, err := h.records.ListEmails(id)
	if err != nil {
		h.logger.Error("Failed to list emails", "company_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	documents, err := h.records.ListDocuments(id)
	if err != nil {
		h.logger.Error("Failed to list documents", "company_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	media, err := h.media.ListAssets(id)
	if err != nil {
		h.logger.Error("Failed to list media assets", "company_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":     company,
		"transcripts": transcripts,
		"emails":      emails,
		"documents":   documents,
		"media":       media,
	})
}

// Update applies a partial update to a company
// PUT /api/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	company, err := h.records.UpdateCompany(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		case errors.Is(err, service.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update company", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, company)
}

// Delete removes a company and every record belonging to it
// DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.records.DeleteCompany(id); err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		h.logger.Error("Failed to delete company", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
