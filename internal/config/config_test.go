package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POCKET_CONSUMER_KEY", "")
	t.Setenv("POCKD_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://getpocket.com", cfg.API.BaseURL)
	assert.Equal(t, "https://getpocket.com/connected_accounts", cfg.API.RedirectURI)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(DataDir(), "pockd.db"), cfg.Storage.Path)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: "https://pocket.example.com"
  consumer_key: "ck-file"
  timeout: 10s
storage:
  path: "/tmp/custom.db"
sync:
  interval: 1h
log_level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pocket.example.com", cfg.API.BaseURL)
	assert.Equal(t, "ck-file", cfg.API.ConsumerKey)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Path)
	assert.Equal(t, time.Hour, cfg.Sync.Interval)
	assert.Equal(t, "debug", cfg.LogLevel)

	// unset fields still default
	assert.Equal(t, "https://getpocket.com/connected_accounts", cfg.API.RedirectURI)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_POCKET_KEY", "ck-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  consumer_key: "${TEST_POCKET_KEY}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ck-env", cfg.API.ConsumerKey)
}

func TestLoad_ConsumerKeyFromEnv(t *testing.T) {
	t.Setenv("POCKET_CONSUMER_KEY", "ck-fallback")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ck-fallback", cfg.API.ConsumerKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDataDir_ExplicitOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POCKD_DIR", dir)

	assert.Equal(t, dir, DataDir())
}

func TestDataDir_XDG(t *testing.T) {
	t.Setenv("POCKD_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	assert.Equal(t, filepath.Join("/tmp/xdg-data", "pockd"), DataDir())
}
