package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  env: production\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.forsign.digital", cfg.ForSign.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.ForSign.Timeout)
	assert.Equal(t, 10*time.Second, cfg.ForSign.ConnectTimeout)
	assert.Equal(t, "ForSignGoClient/2.0", cfg.ForSign.UserAgent)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, FileCacheMemory, cfg.FileCache.Driver)
	assert.Equal(t, 4, cfg.Upload.Concurrency)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
forsign:
  base_url: https://sandbox.forsign.digital
  api_key: from-file
  timeout: 5s
  connect_timeout: 2s
file_cache:
  driver: redis
  ttl: 1h
redis:
  enabled: true
`)
	t.Setenv("FORSIGN_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.forsign.digital", cfg.ForSign.BaseURL)
	assert.Equal(t, "from-env", cfg.ForSign.APIKey)
	assert.Equal(t, 5*time.Second, cfg.ForSign.Timeout)
	assert.Equal(t, 2*time.Second, cfg.ForSign.ConnectTimeout)
	assert.Equal(t, time.Hour, cfg.FileCache.TTL)
	assert.Equal(t, FileCacheRedis, cfg.FileCache.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown cache driver": "file_cache:\n  driver: disk\n",
		"redis cache disabled": "file_cache:\n  driver: redis\n",
		"bad base url":         "forsign:\n  base_url: not a url\n",
		"port out of range":    "app:\n  port: 70000\n",
		"zero concurrency":     "upload:\n  concurrency: 0\n",
		"unknown log level":    "logging:\n  level: verbose\n",
		"database incomplete":  "database:\n  enabled: true\n  host: \"\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
