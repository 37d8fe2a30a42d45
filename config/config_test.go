package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  serviceName: tasker
  log:
    level: info
http:
  port: 3000
database:
  driver: memory
secretKey:
  access: yaml-secret
auth:
  tokenTTL: 1h
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasker.yaml"), []byte(testConfigYAML), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("tasker")
	require.NoError(t, err)

	assert.Equal(t, "tasker", cfg.Env.ServiceName)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "yaml-secret", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "env-secret")
	t.Setenv("HTTP_PORT", "8080")

	cfg, err := LoadWithEnv[Config]("tasker")
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SecretKey.Access)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, int64(defaultAvatarMaxSize), cfg.Avatar.MaxSizeBytes)
	assert.Equal(t, defaultAvatarSize, cfg.Avatar.Size)
	assert.Equal(t, "log", cfg.Notification.Provider)
	assert.Equal(t, defaultNotifyTimeout, cfg.Notification.Timeout)
	assert.Equal(t, defaultWorkerPort, cfg.Worker.Port)
	assert.Equal(t, "/events", cfg.Worker.PushPath)
}
