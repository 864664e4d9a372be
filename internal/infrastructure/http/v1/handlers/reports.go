package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/domain/export"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/infrastructure/http/v1/dto"
)

// HeaderRecordCount carries the number of exported rows on file downloads.
const HeaderRecordCount = "X-Record-Count"

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Query handles POST /reports/:name/query
func (h *ReportsHandler) Query(c *gin.Context) {
	var req dto.ReportQueryRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	page, err := h.service.Query(c.Request.Context(), c.Param("name"), req.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPage(page))
}

// Export handles POST /reports/:name/export?kind=excel|pdf|pdf-compact|dashboard
//
// Files are streamed as attachments. A dashboard export answers with the redirect result.
// Export failures answer 500 with an EXPORT_FAILED error.
func (h *ReportsHandler) Export(c *gin.Context) {
	kind, ok := export.ParseKind(c.Query("kind"))
	if !ok {
		h.Error(c, apperror.NewUnsupportedExport(c.Query("kind")))
		return
	}

	var req dto.ReportQueryRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	art, res, err := h.service.Export(c.Request.Context(), c.Param("name"), kind, req.ToParams(), h.GetSessionID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	if !res.Success {
		h.Error(c, apperror.NewExportFailed(string(kind), res.Error))
		return
	}
	if kind == export.KindDashboard {
		h.OK(c, res)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Header(HeaderRecordCount, strconv.Itoa(res.RecordCount))
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

// MutateClauses handles POST /reports/:name/clauses
func (h *ReportsHandler) MutateClauses(c *gin.Context) {
	var req dto.ClauseMutationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	chain, err := h.service.MutateClauses(c.Param("name"), req.Clauses, reports.ClauseAction(req.Action), req.Clause, req.ID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ClauseMutationResponse{
		Clauses:     chain,
		Description: chain.Describe(),
	})
}
