package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Swapnil565/FloatChat/internal/model"
	"github.com/Swapnil565/FloatChat/internal/service"
)

// ChatHandler handles conversational query requests
type ChatHandler struct {
	pipeline *service.Pipeline
}

// NewChatHandler creates a new chat handler
func NewChatHandler(pipeline *service.Pipeline) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
		return
	}

	// The pipeline reports failures inside the envelope, so the HTTP status
	// is 200 whenever the request itself was well-formed.
	response := h.pipeline.ProcessQuery(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, response)
}
