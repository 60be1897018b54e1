// Ask AI API handlers
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clarityhq/clarity/pkg/models"
	"github.com/clarityhq/clarity/pkg/service"
)

// userIDHeader carries the requesting user's ID. Authentication happens
// upstream of this service; an absent header falls back to the default user.
const userIDHeader = "X-User-ID"

// AIHandler handles ask and chat history requests
type AIHandler struct {
	ask           *service.AskService
	history       *service.HistoryService
	defaultUserID string
	logger        *slog.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(ask *service.AskService, history *service.HistoryService, defaultUserID string, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		ask:           ask,
		history:       history,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// RegisterRoutes registers AI routes
func (h *AIHandler) RegisterRoutes(r *gin.RouterGroup) {
	ai := r.Group("/ai")
	{
		ai.POST("/ask", h.Ask)
		ai.GET("/history/:companyId", h.History)
	}
}

// Ask answers a question about a company
// POST /api/ai/ask
func (h *AIHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id and question are required"})
		return
	}

	userID := requestingUserID(c)
	if userID == "" {
		userID = h.defaultUserID
	}

	resp, err := h.ask.Ask(c.Request.Context(), req.CompanyID, req.Question, userID)
	if err != nil {
		h.writeAskError(c, req.CompanyID, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns recent Q&A exchanges for a company, newest first
// GET /api/ai/history/:companyId
func (h *AIHandler) History(c *gin.Context) {
	companyID := c.Param("companyId")

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := h.history.ListRecent(companyID, limit)
	if err != nil {
		h.logger.Error("Failed to list chat history", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// writeAskError maps pipeline errors onto HTTP responses. Configuration and
// generation failures both read as opaque 500s to the end user but are logged
// with their exact kind for operators.
func (h *AIHandler) writeAskError(c *gin.Context, companyID string, err error) {
	var genErr *service.GenerationError
	var storeErr *service.StorageError

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id and question are required"})
	case errors.Is(err, service.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
	case errors.Is(err, service.ErrGenerationNotConfigured):
		h.logger.Error("Ask failed: generation client not configured", "company_id", companyID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "AI service not configured. Please add your Gemini API key to the environment variables.",
		})
	case errors.As(err, &genErr):
		h.logger.Error("Ask failed: generation error", "company_id", companyID, "error", genErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate AI response"})
	case errors.As(err, &storeErr):
		h.logger.Error("Ask failed: storage error", "company_id", companyID, "op", storeErr.Op, "error", storeErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		h.logger.Error("Ask failed", "company_id", companyID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requestingUserID reads the user ID header, if any.
func requestingUserID(c *gin.Context) string {
	return c.GetHeader(userIDHeader)
}
