package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
server:
  port: ${TEST_APISERVER_PORT:5235}
database:
  type: "${TEST_DB_TYPE:sqlite}"
  dbname: ":memory:"
storage:
  path: "/tmp/docs"
  max_file_size: 1048576
jwt:
  secret_key: "${TEST_JWT_SECRET:fallback-secret}"
  duration: "12h"
super_admin:
  email: "admin@example.com"
  password: "secret"
metrics:
  enabled: true
  namespace: "testns"
`
	path := filepath.Join(t.TempDir(), "apiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("TEST_DB_TYPE", "postgres")
	os.Unsetenv("TEST_APISERVER_PORT")
	os.Unsetenv("TEST_JWT_SECRET")

	cfg, cfgPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)

	// unset placeholders fall back to their defaults, set ones win
	assert.Equal(t, 5235, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "fallback-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxFileSize)
	assert.Equal(t, "admin@example.com", cfg.SuperAdmin.Email)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "testns", cfg.Metrics.Namespace)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("TEST_RESOLVE_SET", "from-env")

	in := []byte("a: ${TEST_RESOLVE_SET:default-a}\nb: ${TEST_RESOLVE_UNSET:default-b}\nc: ${TEST_RESOLVE_EMPTY:}\n")
	out := string(resolveEnv(in))
	assert.Equal(t, "a: from-env\nb: default-b\nc: \n", out)
}

func TestGetDSN(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "gestimo", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/gestimo?sslmode=disable", pg.GetDSN())

	my := DatabaseConfig{Type: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", DBName: "gestimo"}
	assert.Equal(t, "u:p@tcp(db:3306)/gestimo?charset=utf8mb4&parseTime=True&loc=Local", my.GetDSN())

	lite := DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	assert.Equal(t, ":memory:", lite.GetDSN())
}
