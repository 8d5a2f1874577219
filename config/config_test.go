package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 指定一个不存在的路径，只会落到内置默认配置
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalOverride(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \":9090\"\njwt:\n  expire_hours: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// 外部文件覆盖的字段生效，未覆盖的保留默认值
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.NotEmpty(t, cfg.JWT.Secret)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	t.Setenv("MALL_SERVER_PORT", ":7070")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoadConfig_ExpireHoursFallback(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt:\n  expire_hours: 0\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
}

func TestSafeErrorMessage(t *testing.T) {
	defer func() { GlobalConfig = nil }()
	boom := errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

	// debug 模式返回原始错误，便于排查
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, boom.Error(), SafeErrorMessage(boom, "操作失败"))

	// release 模式只返回兜底文案
	GlobalConfig.Server.Mode = "release"
	assert.Equal(t, "操作失败", SafeErrorMessage(boom, "操作失败"))

	// nil 错误返回兜底文案
	assert.Equal(t, "操作失败", SafeErrorMessage(nil, "操作失败"))
}
