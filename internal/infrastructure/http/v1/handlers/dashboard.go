package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/domain/export"
)

// HandoffReader hands out a stored payload once.
type HandoffReader interface {
	Take(ctx context.Context, sessionID, slot string) ([]byte, error)
}

// DashboardHandler serves the dashboard side of an export handoff.
type DashboardHandler struct {
	*BaseHandler
	store HandoffReader
}

func NewDashboardHandler(base *BaseHandler, store HandoffReader) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		store:       store,
	}
}

// Handoff handles GET /dashboard/handoff
// The payload is removed on read; a second call answers 404.
func (h *DashboardHandler) Handoff(c *gin.Context) {
	data, err := h.store.Take(c.Request.Context(), h.GetSessionID(c), export.DashboardSlot)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json", data)
}
