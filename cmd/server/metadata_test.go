package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"assetdesk/internal/config"
	"assetdesk/internal/core/record"
	"assetdesk/internal/infrastructure/source"
	"assetdesk/pkg/logger"
)

func TestSetupRegistry_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
reports:
  - name: asset-register
    label: Fixed Assets
    endpoint: /v2/assets
    columns:
      - {key: asset_id, title: Asset ID}
  - name: licences
    label: Software Licences
    endpoint: /licences
    columns:
      - {key: sku, title: SKU}
`), 0o600))

	reg, err := setupRegistry(path)
	require.NoError(t, err)

	assert.Len(t, reg.List(), 6)
	def, ok := reg.Get("asset-register")
	require.True(t, ok)
	assert.Equal(t, "Fixed Assets", def.Label)
}

func TestSetupRegistry_MissingFile(t *testing.T) {
	_, err := setupRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetupSource(t *testing.T) {
	_, ok := setupSource(config.SourceConfig{BaseURL: "http://assets.local"}).(*source.REST)
	assert.True(t, ok)

	_, ok = setupSource(config.SourceConfig{Dir: "data"}).(*source.Dir)
	assert.True(t, ok)
}

func TestSetupRowCache_LogsRefresh(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	rows := source.Static{{"asset_id": record.String("A1")}}
	rowCache := setupRowCache(config.SourceConfig{CacheTTL: time.Minute}, rows, log)

	rowCache.Invalidate(context.Background(), "asset-register")
	rowCache.Invalidate(context.Background(), "")

	refreshed := logs.FilterField(zap.String("component", "reports")).All()
	require.Len(t, refreshed, 2)
	assert.Equal(t, "report rows refreshed", refreshed[0].Message)
	assert.Equal(t, "asset-register", refreshed[0].ContextMap()["report"])
	assert.Equal(t, "all report rows refreshed", refreshed[1].Message)
}
