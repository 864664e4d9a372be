// Package main is the entry point for the assetdesk API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"assetdesk/internal/config"
	"assetdesk/internal/domain/export"
	"assetdesk/internal/domain/reports"
	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/infrastructure/handoff"
	v1 "assetdesk/internal/infrastructure/http/v1"
	"assetdesk/internal/infrastructure/source"
	"assetdesk/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to $ASSETDESK_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("starting assetdesk server", "version", version)

	// --- Report definitions ---
	registry, err := setupRegistry(cfg.Reports.DefinitionsFile)
	if err != nil {
		log.Fatalw("failed to load report definitions", "error", err)
	}
	log.Infow("report registry initialized", "reports", len(registry.List()))

	// --- Row source ---
	src := setupSource(cfg.Source)
	if cfg.Source.BaseURL != "" {
		log.Infow("rows fetched over REST", "base_url", cfg.Source.BaseURL, "timeout", cfg.Source.Timeout)
	} else {
		log.Infow("rows read from directory", "dir", cfg.Source.Dir)
	}

	rowCache := setupRowCache(cfg.Source, src, log)
	rowCache.Start(context.Background(), cfg.Source.CacheTTL)
	defer rowCache.Stop()

	// --- Dashboard handoff ---
	store, err := handoff.New(handoff.Config{
		TTL:               cfg.Handoff.TTL,
		CompressThreshold: cfg.Handoff.CompressThreshold,
	})
	if err != nil {
		log.Fatalw("failed to create handoff store", "error", err)
	}
	defer store.Close()

	janitor, err := handoff.StartJanitor(store, cfg.Handoff.SweepSchedule, log.WithComponent("handoff"))
	if err != nil {
		log.Fatalw("failed to schedule handoff sweep", "error", err)
	}

	// --- Reports ---
	formatter := export.NewFormatter(export.Options{
		ColumnThreshold: cfg.Export.ColumnThreshold,
		CompactColumns:  cfg.Export.CompactColumns,
		FontFile:        cfg.Export.FontFile,
		Uncompressed:    cfg.Export.UncompressedPDF,
	}, store)

	reportService := reports.NewService(registry, rowCache, formatter, reports.Config{
		DefaultPageSize: cfg.Reports.DefaultPageSize,
		MaxPageSize:     cfg.Reports.MaxPageSize,
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:   log,
		Registry: registry,
		Reports:  reportService,
		Handoff:  store,
		RowCache: rowCache,
		Version:  version,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}
	<-janitor.Stop().Done()

	log.Info("server stopped")
}

func setupSource(cfg config.SourceConfig) reports.Source {
	if cfg.BaseURL != "" {
		return source.NewREST(cfg.BaseURL, cfg.Timeout)
	}
	return source.NewDir(cfg.Dir)
}

// setupRowCache puts the row cache in front of src and reports refreshes
// under the reports component.
func setupRowCache(cfg config.SourceConfig, src reports.Source, log *logger.Logger) *cache.RowCache {
	rowCache := cache.NewRowCache(src, cfg.CacheTTL)
	reportLog := log.WithComponent("reports")
	rowCache.OnInvalidate(func(report string) {
		if report == "" {
			reportLog.Infow("all report rows refreshed")
			return
		}
		reportLog.Infow("report rows refreshed", "report", report)
	})
	return rowCache
}
