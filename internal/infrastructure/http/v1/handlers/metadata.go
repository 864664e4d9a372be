package handlers

import (
	"github.com/gin-gonic/gin"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/infrastructure/http/v1/dto"
	"assetdesk/internal/metadata"
)

type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// ListReports returns a summary of every registered report.
// GET /api/v1/meta/reports
func (h *MetadataHandler) ListReports(c *gin.Context) {
	h.OK(c, dto.FromReportDefs(h.registry.List()))
}

// GetReport returns the full definition of one report with its query builder vocabulary.
// GET /api/v1/meta/reports/:name
func (h *MetadataHandler) GetReport(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("report", name))
		return
	}
	h.OK(c, dto.FromReportDef(def))
}
