package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawrencceee/Housing-Tracker/internal/repository"
	"github.com/lawrencceee/Housing-Tracker/internal/service"
)

// remediationHint accompanies every failed turn. The turn either fully
// succeeds or fails as a whole; there is no partial-success reporting.
const remediationHint = "Please check your Notion database ID, API keys, and that the integration is shared with the database."

// AssistantHandler handles the free-text assistant endpoint
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// AssistantRequest is the single free-text input of one user turn.
type AssistantRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handle handles POST /api/v1/assistant
func (h *AssistantHandler) Handle(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	outcome, err := h.assistant.Handle(c.Request.Context(), req.Text)
	if err != nil {
		var notFound *repository.RecordNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"hint":  remediationHint,
		})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
