// Package config loads process configuration: built-in defaults, then an
// optional TOML file, then ASSETDESK_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	// EnvPrefix marks environment overrides. "__" separates levels:
	// ASSETDESK_SOURCE__BASE_URL sets source.base_url.
	EnvPrefix = "ASSETDESK_"
	// EnvFile names the TOML config file.
	EnvFile = "ASSETDESK_CONFIG"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Source  SourceConfig  `koanf:"source"`
	Reports ReportsConfig `koanf:"reports"`
	Export  ExportConfig  `koanf:"export"`
	Handoff HandoffConfig `koanf:"handoff"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
	File        string `koanf:"file"`
	MaxSizeMB   int    `koanf:"max_size_mb"`
	MaxBackups  int    `koanf:"max_backups"`
	MaxAgeDays  int    `koanf:"max_age_days"`
	Compress    bool   `koanf:"compress"`
}

// SourceConfig selects where rows come from. BaseURL wins over Dir.
type SourceConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	Dir     string        `koanf:"dir"`

	// CacheTTL keeps fetched rows per report; zero disables the cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type ReportsConfig struct {
	DefinitionsFile string `koanf:"definitions_file"`
	DefaultPageSize int    `koanf:"default_page_size"`
	MaxPageSize     int    `koanf:"max_page_size"`
}

type ExportConfig struct {
	ColumnThreshold int `koanf:"column_threshold"`
	CompactColumns  int `koanf:"compact_columns"`

	// FontFile is a UTF-8 TrueType font for PDF text. Without it PDFs use
	// Helvetica and spell out currency signs cp1252 lacks ("₹" as "Rs.").
	FontFile        string `koanf:"font_file"`
	UncompressedPDF bool   `koanf:"uncompressed_pdf"`
}

type HandoffConfig struct {
	TTL               time.Duration `koanf:"ttl"`
	CompressThreshold int           `koanf:"compress_threshold"`
	SweepSchedule     string        `koanf:"sweep_schedule"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":             "8080",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "30s",

		"log.level":        "info",
		"log.development":  false,
		"log.max_size_mb":  100,
		"log.max_backups":  5,
		"log.max_age_days": 28,

		"source.timeout":   "30s",
		"source.dir":       "data",
		"source.cache_ttl": "30s",

		"reports.default_page_size": 10,
		"reports.max_page_size":     500,

		"export.column_threshold": 20,
		"export.compact_columns":  8,

		"handoff.ttl":                "10m",
		"handoff.compress_threshold": 10 * 1024,
		"handoff.sweep_schedule":     "@every 1m",
	}
}

// Load reads the configuration. path overrides ASSETDESK_CONFIG when non-empty.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ASSETDESK_SOURCE__BASE_URL to source.base_url.
// The file selector itself is not a config key.
func envKey(s string) string {
	if s == EnvFile {
		return ""
	}
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate rejects limits the pipeline cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Export.ColumnThreshold <= 0 {
		errs = append(errs, errors.New("export.column_threshold must be positive"))
	}
	if c.Export.CompactColumns <= 0 {
		errs = append(errs, errors.New("export.compact_columns must be positive"))
	}
	if c.Reports.DefaultPageSize <= 0 {
		errs = append(errs, errors.New("reports.default_page_size must be positive"))
	}
	if c.Reports.MaxPageSize < c.Reports.DefaultPageSize {
		errs = append(errs, errors.New("reports.max_page_size must not be below default_page_size"))
	}
	if c.Export.FontFile != "" {
		if _, err := os.Stat(c.Export.FontFile); err != nil {
			errs = append(errs, fmt.Errorf("export.font_file: %w", err))
		}
	}
	if c.Source.CacheTTL < 0 {
		errs = append(errs, errors.New("source.cache_ttl must not be negative"))
	}
	if c.Handoff.TTL <= 0 {
		errs = append(errs, errors.New("handoff.ttl must be positive"))
	}
	return errors.Join(errs...)
}
