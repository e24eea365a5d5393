package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Swapnil565/FloatChat/internal/repository"
	"github.com/Swapnil565/FloatChat/internal/service"
)

// StatusHandler reports system component health
type StatusHandler struct {
	repo    *repository.ArgoRepository
	llm     *service.LLMClient
	started time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(repo *repository.ArgoRepository, llm *service.LLMClient) *StatusHandler {
	return &StatusHandler{
		repo:    repo,
		llm:     llm,
		started: time.Now(),
	}
}

// Status handles GET /api/v1/system/status
func (h *StatusHandler) Status(c *gin.Context) {
	database := gin.H{"connected": false}
	if count, err := h.repo.CountMeasurements(c.Request.Context()); err == nil {
		database = gin.H{"connected": true, "measurement_count": count}
	}

	c.JSON(http.StatusOK, gin.H{
		"database":       database,
		"llm_enabled":    h.llm.IsEnabled(),
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"timestamp":      time.Now().UTC(),
	})
}
