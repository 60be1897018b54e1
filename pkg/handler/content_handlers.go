// Transcript, email and document API handlers
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/service"
)

// ContentHandler handles transcript, email and document CRUD requests
type ContentHandler struct {
	records *service.RecordService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(records *service.RecordService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{records: records, logger: logger}
}

// RegisterRoutes registers content routes
func (h *ContentHandler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies/:id")
	{
		companies.GET("/transcripts", h.ListTranscripts)
		companies.POST("/transcripts", h.CreateTranscript)
		companies.GET("/emails", h.ListEmails)
		companies.POST("/emails", h.CreateEmail)
		companies.GET("/documents", h.ListDocuments)
		companies.POST("/documents", h.CreateDocument)
	}

	transcripts := r.Group("/transcripts")
	{
		transcripts.GET(":id", h.GetTranscript)
		transcripts.PUT(":id", h.UpdateTranscript)
		transcripts.DELETE(":id", h.DeleteTranscript)
	}
	emails := r.Group("/emails")
	{
		emails.GET(":id", h.GetEmail)
		emails.PUT(":id", h.UpdateEmail)
		emails.DELETE(":id", h.DeleteEmail)
	}
	documents := r.Group("/documents")
	{
		documents.GET(":id", h.GetDocument)
		documents.PUT(":id", h.UpdateDocument)
		documents.DELETE(":id", h.DeleteDocument)
	}
}

// ========== Transcripts ==========

// ListTranscripts lists a company's transcripts
// GET /api/companies/:id/transcripts
func (h *ContentHandler) ListTranscripts(c *gin.Context) {
	companyID := c.Param("id")
	transcripts, err := h.records.ListTranscripts(companyID)
	if err != nil {
		h.logger.Error("Failed to list transcripts", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, transcripts)
}

// CreateTranscript adds a transcript to a company
// POST /api/companies/:id/transcripts
func (h *ContentHandler) CreateTranscript(c *gin.Context) {
	companyID := c.Param("id")

	var req models.CreateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	transcript, err := h.records.CreateTranscript(companyID, &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transcript)
}

// GetTranscript returns a single transcript
// GET /api/transcripts/:id
func (h *ContentHandler) GetTranscript(c *gin.Context) {
	transcript, err := h.records.GetTranscript(c.Param("id"))
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// UpdateTranscript applies a partial update to a transcript
// PUT /api/transcripts/:id
func (h *ContentHandler) UpdateTranscript(c *gin.Context) {
	var req models.UpdateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	transcript, err := h.records.UpdateTranscript(c.Param("id"), &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// DeleteTranscript removes a transcript
// DELETE /api/transcripts/:id
func (h *ContentHandler) DeleteTranscript(c *gin.Context) {
	if err := h.records.DeleteTranscript(c.Param("id")); err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ========== Emails ==========

// ListEmails lists a company's emails
// GET /api/companies/:id/emails
func (h *ContentHandler) ListEmails(c *gin.Context) {
	companyID := c.Param("id")
	emails, err := h.records.ListEmails(companyID)
	if err != nil {
		h.logger.Error("Failed to list emails", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, emails)
}

// CreateEmail adds an email to a company
// POST /api/companies/:id/emails
func (h *ContentHandler) CreateEmail(c *gin.Context) {
	companyID := c.Param("id")

	var req models.CreateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject, from_address, to_addresses and body are required"})
		return
	}

	email, err := h.records.CreateEmail(companyID, &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusCreated, email)
}

// GetEmail returns a single email
// GET /api/emails/:id
func (h *ContentHandler) GetEmail(c *gin.Context) {
	email, err := h.records.GetEmail(c.Param("id"))
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// UpdateEmail applies a partial update to an email
// PUT /api/emails/:id
func (h *ContentHandler) UpdateEmail(c *gin.Context) {
	var req models.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	email, err := h.records.UpdateEmail(c.Param("id"), &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// DeleteEmail removes an email
// DELETE /api/emails/:id
func (h *ContentHandler) DeleteEmail(c *gin.Context) {
	if err := h.records.DeleteEmail(c.Param("id")); err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ========== Documents ==========

// ListDocuments lists a company's documents
// GET /api/companies/:id/documents
func (h *ContentHandler) ListDocuments(c *gin.Context) {
	companyID := c.Param("id")
	documents, err := h.records.ListDocuments(companyID)
	if err != nil {
		h.logger.Error("Failed to list documents", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, documents)
}

// CreateDocument adds a document to a company
// POST /api/companies/:id/documents
func (h *ContentHandler) CreateDocument(c *gin.Context) {
	companyID := c.Param("id")

	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and type are required"})
		return
	}

	document, err := h.records.CreateDocument(companyID, &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

// GetDocument returns a single document
// GET /api/documents/:id
func (h *ContentHandler) GetDocument(c *gin.Context) {
	document, err := h.records.GetDocument(c.Param("id"))
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// UpdateDocument applies a partial update to a document
// PUT /api/documents/:id
func (h *ContentHandler) UpdateDocument(c *gin.Context) {
	var req models.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	document, err := h.records.UpdateDocument(c.Param("id"), &req)
	if err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// DeleteDocument removes a document
// DELETE /api/documents/:id
func (h *ContentHandler) DeleteDocument(c *gin.Context) {
	if err := h.records.DeleteDocument(c.Param("id")); err != nil {
		h.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeRecordError maps record-store errors onto HTTP responses
func (h *ContentHandler) writeRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	case errors.Is(err, service.ErrTranscriptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transcript not found"})
	case errors.Is(err, service.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Record store request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
