// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/metadata"
)

// PendingCounter reports how many dashboard handoffs await pickup.
type PendingCounter interface {
	Len() int
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	registry *metadata.Registry
	pending  PendingCounter
	version  string
	started  time.Time
}

// NewHealthHandler creates a new health handler. pending may be nil.
func NewHealthHandler(registry *metadata.Registry, pending PendingCounter, version string) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		pending:  pending,
		version:  version,
		started:  time.Now(),
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.registry == nil || len(h.registry.List()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"reports": "no report definitions loaded",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"reports": "loaded",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{
		"app":            "assetdesk",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}
	if h.registry != nil {
		info["reports"] = len(h.registry.List())
	}
	if h.pending != nil {
		info["pending_handoffs"] = h.pending.Len()
	}
	c.JSON(http.StatusOK, info)
}
