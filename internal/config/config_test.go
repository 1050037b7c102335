package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp4sp4/NMS-System-sub000/internal/config"
)

// TestLoadDefaults 测试缺省配置
func TestLoadDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "관리자", cfg.Routing.DefaultParty)
	assert.Equal(t, "경영지원팀", cfg.Permission.AuthorityUnit)
	assert.Equal(t, "대표", cfg.Permission.AuthorityTitle)
}

// TestLoadFromFile 测试从 YAML 文件加载
func TestLoadFromFile(t *testing.T) {
	content := `
env: production
server:
  host: 127.0.0.1
  port: 9090
database:
  dbname: approval
routing:
  default_party: 시스템관리자
visibility:
  영업팀:
    - 근태
    - 영업
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, config.IsProduction(cfg))
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "approval", cfg.Database.DBName)
	assert.Equal(t, "시스템관리자", cfg.Routing.DefaultParty)
	assert.Equal(t, []string{"근태", "영업"}, cfg.Visibility["영업팀"])

	// 未覆盖的键保留默认值
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

// TestLoadMissingFile 测试指定的配置文件不存在
func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestEnvOverride 测试环境变量覆盖
func TestEnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "3000")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}
