package v1

import (
	"github.com/gin-gonic/gin"

	"assetdesk/internal/domain/reports"
	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/infrastructure/handoff"
	"assetdesk/internal/infrastructure/http/v1/handlers"
	"assetdesk/internal/infrastructure/http/v1/middleware"
	"assetdesk/internal/metadata"
	"assetdesk/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Registry stores report definitions
	Registry *metadata.Registry

	// Reports runs the filter/query/sort pipeline and exports
	Reports *reports.Service

	// Handoff holds dashboard payloads until the dashboard reads them
	Handoff *handoff.Store

	// RowCache caches fetched rows; nil disables the refresh endpoint
	RowCache *cache.RowCache

	// Version is reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no session required)
	var pending handlers.PendingCounter
	if cfg.Handoff != nil {
		pending = cfg.Handoff
	}
	healthHandler := handlers.NewHealthHandler(cfg.Registry, pending, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session())
	{
		registerMetaRoutes(v1, cfg)
		registerReportRoutes(v1, cfg)
		registerDashboardRoutes(v1, cfg)
	}

	return router
}

// registerMetaRoutes registers report definition endpoints.
func registerMetaRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Registry == nil {
		return
	}

	handler := handlers.NewMetadataHandler(handlers.NewBaseHandler(), cfg.Registry)
	meta := rg.Group("/meta/reports")
	{
		meta.GET("", handler.ListReports)
		meta.GET("/:name", handler.GetReport)
	}
}

// registerReportRoutes registers pipeline endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Reports == nil {
		return
	}

	group := rg.Group("/reports/:name")
	handler := handlers.NewReportsHandler(handlers.NewBaseHandler(), cfg.Reports)
	RegisterReportRoutes(group, handler)

	if cfg.RowCache != nil && cfg.Registry != nil {
		cacheHandler := handlers.NewCacheHandler(handlers.NewBaseHandler(), cfg.Registry, cfg.RowCache)
		group.POST("/refresh", cacheHandler.Refresh)
	}
}

// registerDashboardRoutes registers the dashboard handoff endpoint.
func registerDashboardRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Handoff == nil {
		return
	}

	handler := handlers.NewDashboardHandler(handlers.NewBaseHandler(), cfg.Handoff)
	rg.GET("/dashboard/handoff", handler.Handoff)
}
