package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithAliasEnv(t *testing.T) {
	t.Setenv("APP_CONFIG", "config/does-not-exist.yaml")
	t.Setenv("BACKOFFICE_LISTEN_ADDR", "127.0.0.1:8080")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("MODULOS_DISPONIVEIS", " Cadastro,estoque,,cadastro")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
	assert.True(t, cfg.IsDev(), "expected dev env, got %s", cfg.AppEnv)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"cadastro", "estoque"}, cfg.Catalog.AvailableModules)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_CONFIG", "config/does-not-exist.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr)
	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Catalog.AvailableModules)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	raw := []byte(`
listen_addr: "127.0.0.1:7070"
app_env: dev
catalog:
  path: /etc/backoffice/catalog.yaml
  available_modules: [comercial, rh]
observability:
  metrics_enabled: true
cors:
  allowed_origins: ["http://localhost:5173"]
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	t.Setenv("APP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7070", cfg.ListenAddr)
	assert.Equal(t, "/etc/backoffice/catalog.yaml", cfg.Catalog.Path)
	assert.Len(t, cfg.Catalog.AvailableModules, 2)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.Len(t, cfg.CORS.AllowedOrigins, 1)
}

func TestListenAddrWithPort(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", listenAddrWithPort("127.0.0.1:8080", "abc"), "non-numeric port must be ignored")
	assert.Equal(t, "0.0.0.0:81", listenAddrWithPort("", "81"))
}
