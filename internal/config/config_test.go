package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig 写入临时配置文件
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad_Defaults 测试默认配置
func TestLoad_Defaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "capflow.db", cfg.Database.Path)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 15, cfg.Metrics.CollectInterval)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "X-User-Role")
}

// TestLoad_FromFile 测试从配置文件加载
func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server:
  host: "127.0.0.1"
  port: 8080
database:
  driver: postgres
  host: db.internal
  dbname: capflow
log:
  level: warn
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// 未配置的字段使用默认值
	assert.Equal(t, 5432, cfg.Database.Port)
}

// TestLoad_MissingFile 测试配置文件不存在
func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestLoad_EnvOverride 测试环境变量覆盖
func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server:
  port: 8080
`)
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_DATABASE_PATH", ":memory:")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
}

// TestLoad_DotEnv 测试从 .env 加载环境变量
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("APP_METRICS_COLLECT_INTERVAL")
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_METRICS_COLLECT_INTERVAL=30\n"), 0644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Metrics.CollectInterval)
}

// TestIsProduction 测试环境判断
func TestIsProduction(t *testing.T) {
	assert.False(t, config.IsProduction(nil))
	assert.False(t, config.IsProduction(&config.Config{Env: "development"}))
	assert.True(t, config.IsProduction(&config.Config{Env: "production"}))
}
