package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Point at a path that does not exist; only defaults apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, "30s", cfg.Backend.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://api.rgbim.com
  timeout: 10s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.rgbim.com", cfg.Backend.BaseURL)
	assert.Equal(t, "10s", cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://file.example.com
`)

	t.Setenv("RGBIM_BACKEND_BASE_URL", "https://env.example.com")
	t.Setenv("RGBIM_LOG_LEVEL", "error")
	t.Setenv("RGBIM_STORAGE_DIR", "/var/lib/rgbim")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/var/lib/rgbim", cfg.Storage.Dir)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeConfig(t, "backend: [not: valid: yaml")

	_, err := Load(path)
	require.Error(t, err)
}
