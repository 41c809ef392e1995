package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

// ConversationHandler handles the discussion thread nested under a case,
// including the SSE stream that pushes new messages to open viewers.
type ConversationHandler struct {
	conversationService core.ConversationService
	logger              *zap.Logger
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(cs core.ConversationService, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{conversationService: cs, logger: logger}
}

// PostMessage handles POST /api/cases/:caseId/messages.
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	senderName := c.GetString("userDisplayName")

	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	msg, err := h.conversationService.PostMessage(c.Request.Context(), callerUID, senderName, c.Param("caseId"), req.Text)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages handles GET /api/cases/:caseId/messages.
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}

	messages, err := h.conversationService.ListMessages(c.Request.Context(), callerUID, c.Param("caseId"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// StreamMessages handles GET /api/cases/:caseId/messages/stream. Newly posted
// messages are pushed as "message" SSE events until the client disconnects.
func (h *ConversationHandler) StreamMessages(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		return
	}
	caseID := c.Param("caseId")

	ch, err := h.conversationService.StreamMessages(c.Request.Context(), callerUID, caseID)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
