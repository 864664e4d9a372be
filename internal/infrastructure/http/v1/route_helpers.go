// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// ReportRouteHandler defines the interface for report handlers.
type ReportRouteHandler interface {
	Query(c *gin.Context)
	Export(c *gin.Context)
	MutateClauses(c *gin.Context)
}

// RegisterReportRoutes registers the pipeline routes of the report named by :name.
//
// Usage:
//
//	handler := handlers.NewReportsHandler(baseHandler, cfg.Reports)
//	RegisterReportRoutes(rg.Group("/reports/:name"), handler)
func RegisterReportRoutes(group *gin.RouterGroup, handler ReportRouteHandler) {
	group.POST("/query", handler.Query)
	group.POST("/export", handler.Export)
	group.POST("/clauses", handler.MutateClauses)
}
