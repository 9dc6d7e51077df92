package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tubewarden/tubewarden/internal/logger"
)

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.Name,
		"version": h.cfg.Version,
	})
}

// ReadyCheck handles GET /ready. The session store is the only hard runtime
// dependency; the platform and model are reached lazily per request.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if err := h.sessions.Ping(c.Request.Context()); err != nil {
		h.logger.Error("session store unreachable", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"redis": "unreachable"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"redis": "ok"},
	})
}
