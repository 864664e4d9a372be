package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/metadata"
)

// Invalidator drops cached report rows.
type Invalidator interface {
	Invalidate(ctx context.Context, report string)
}

// CacheHandler lets a screen force a refetch of its rows.
type CacheHandler struct {
	*BaseHandler
	registry *metadata.Registry
	cache    Invalidator
}

func NewCacheHandler(base *BaseHandler, registry *metadata.Registry, cache Invalidator) *CacheHandler {
	return &CacheHandler{
		BaseHandler: base,
		registry:    registry,
		cache:       cache,
	}
}

// Refresh handles POST /reports/:name/refresh
func (h *CacheHandler) Refresh(c *gin.Context) {
	name := c.Param("name")
	if _, ok := h.registry.Get(name); !ok {
		h.Error(c, apperror.NewNotFound("report", name))
		return
	}
	h.cache.Invalidate(c.Request.Context(), name)
	h.Success(c, "report rows will be refetched")
}
