package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_url: http://localhost:8000\ntimeout_seconds: 5\nlog_level: debug\nstate_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "state.json"), cfg.StatePath())
	assert.Equal(t, filepath.Join(dir, "sefy.log"), cfg.LogPath())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://localhost:8000\n"), 0o644))

	t.Setenv("SEFY_API_URL", "https://backend.example.com")
	t.Setenv("SEFY_TIMEOUT_SECONDS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.com", cfg.APIURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [broken\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateConfigRejectsBadURL(t *testing.T) {
	cfg := &Config{APIURL: "not-a-url", TimeoutSeconds: 10, LogLevel: "info", StateDir: t.TempDir()}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiurl")
}

func TestValidateConfigRejectsBadLogLevel(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8000", TimeoutSeconds: 10, LogLevel: "loud", StateDir: t.TempDir()}
	require.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigRejectsTimeoutOutOfRange(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8000", TimeoutSeconds: 0, LogLevel: "info"}
	require.Error(t, ValidateConfig(cfg))
}
