package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRows = `{"data": [
	{"asset_id": "A1", "asset_name": "Laptop", "status": "Active", "state": "Goa", "purchase_cost": 1200, "changed_on": "2026-10-01"},
	{"asset_id": "A2", "asset_name": "Printer", "status": "Archived", "state": "Goa", "purchase_cost": 300, "changed_on": "2026-06-01"},
	{"asset_id": "A3", "asset_name": "Server", "status": "Active", "state": "Kerala", "purchase_cost": 4500, "changed_on": "2026-10-10"}
]}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRows(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRows), 0o600))
	return path
}

func TestReportsCmd(t *testing.T) {
	out, err := run(t, "reports")
	require.NoError(t, err)
	assert.Contains(t, out, "asset-register")
	assert.Contains(t, out, "depreciation")
}

func TestColumnsCmd(t *testing.T) {
	out, err := run(t, "columns", "asset-register")
	require.NoError(t, err)
	assert.Contains(t, out, "purchase_cost")
	assert.Contains(t, out, "Asset -> asset_id")
	assert.NotContains(t, out, "actions")

	_, err = run(t, "columns", "nope")
	assert.Error(t, err)
}

func TestQueryCmd(t *testing.T) {
	path := writeRows(t)

	out, err := run(t, "query", "asset-register", "--records", path,
		"--filter", "status=Active", "--sort", "purchase_cost:desc")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
	assert.Contains(t, lines[1], "A3")
	assert.Contains(t, lines[2], "A1")
	assert.Contains(t, out, "page 1 of 1, 2 rows")
}

func TestQueryCmd_JSON(t *testing.T) {
	path := writeRows(t)

	out, err := run(t, "query", "asset-register", "--records", path, "--where", "State = Kerala", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 1`)
	assert.Contains(t, out, `"A3"`)
}

func TestQueryCmd_RequiresRecords(t *testing.T) {
	_, err := run(t, "query", "asset-register")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	path := writeRows(t)
	dir := t.TempDir()

	out, err := run(t, "export", "asset-register", "--records", path, "--kind", "pdf", "--out", dir,
		"--between", "changed_on=2026-10-01..2026-10-31")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 rows)")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "asset_register_filtered_"))
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".pdf"))
}

func TestExportCmd_RejectsDashboard(t *testing.T) {
	path := writeRows(t)
	_, err := run(t, "export", "asset-register", "--records", path, "--kind", "dashboard")
	assert.Error(t, err)
}
