package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadFrom_Defaults(t *testing.T) {
	// given
	dir := t.TempDir()
	// when
	cfg, err := LoadFrom(filepath.Join(dir, "config.yaml"), filepath.Join(dir, ".env"))
	// then
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "inventory.txt", cfg.Storage.Path)
	assert.Equal(t, "activity_log.txt", cfg.Activity.Path)
	assert.Equal(t, "inventory_export.csv", cfg.Export.CSVPath)
	assert.Equal(t, "inventory_export.xlsx", cfg.Export.XLSXPath)
	assert.Equal(t, 100, cfg.Catalog.Capacity)
	assert.Equal(t, 10, cfg.Catalog.LowStock)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func Test_LoadFrom_Layers(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
storage:
  backend: sqlite
  path: data/inventory.db
catalog:
  capacity: 50
log:
  level: debug
`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte(
		"INVENTORY_CATALOG_LOWSTOCK=5\nINVENTORY_LOG_LEVEL=warn\nUNRELATED_KEY=1\n"), 0o644))
	t.Setenv("INVENTORY_LOG_LEVEL", "error")
	// when
	cfg, err := LoadFrom(yamlPath, envPath)
	// then
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "data/inventory.db", cfg.Storage.Path)
	assert.Equal(t, 50, cfg.Catalog.Capacity)
	assert.Equal(t, 5, cfg.Catalog.LowStock, ".env overrides defaults")
	assert.Equal(t, "error", cfg.Log.Level, "process env overrides .env and yaml")
}

func Test_LoadFrom_EnvOverridesNumbers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INVENTORY_CATALOG_CAPACITY", "25")
	t.Setenv("INVENTORY_EXPORT_CSVPATH", "out/report.csv")

	cfg, err := LoadFrom(filepath.Join(dir, "none.yaml"), "")

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Catalog.Capacity)
	assert.Equal(t, "out/report.csv", cfg.Export.CSVPath)
}

func Test_LoadFrom_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "unknown backend", yaml: "storage:\n  backend: postgres\n"},
		{name: "zero capacity", yaml: "catalog:\n  capacity: 0\n"},
		{name: "negative threshold", yaml: "catalog:\n  lowstock: -1\n"},
		{name: "bad log level", yaml: "log:\n  level: verbose\n"},
		{name: "empty storage path", yaml: "storage:\n  path: \"\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))
			// when
			_, err := LoadFrom(path, "")
			// then
			assert.ErrorContains(t, err, "konfiguratsiya noto'g'ri")
		})
	}
}

func Test_LoadFrom_MemoryBackendNeedsNoPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: memory\n  path: \"\"\n"), 0o644))

	cfg, err := LoadFrom(path, "")

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func Test_LoadFrom_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))

	_, err := LoadFrom(path, "")

	assert.Error(t, err)
}

func Test_KeyTransformer(t *testing.T) {
	assert.Equal(t, "storage.path", keyTransformer("INVENTORY_STORAGE_PATH"))
	assert.Equal(t, "export.xlsxpath", keyTransformer("INVENTORY_EXPORT_XLSXPATH"))
}

func Test_NewLogger(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := NewLogger("warn", &buf)
	// when
	logger.Info("hidden")
	logger.Warn("shown", "op", "sale")
	// then
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"op":"sale"`)

	assert.Equal(t, slog.LevelDebug, ToLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ToLevel("whatever"))
}

func Test_OpenLogOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "diagnostics.log")

	w, err := OpenLogOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))

	stderr, err := OpenLogOutput("")
	require.NoError(t, err)
	assert.NoError(t, stderr.Close())
}
