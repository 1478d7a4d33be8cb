package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"ADMIN_PASSWORD", "DATABASE_URL", "SQLITE_PATH", "REDIS_ADDR", "STORAGE_DRIVER", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "server:\n  port: \"9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "quiz.db", cfg.SQLite.Path)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, "travel-health", cfg.Catalog.ID)
	assert.True(t, cfg.RequireAssessor())
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")

	cfg, err := Load(writeConfig(t, `
admin:
  password: fromfile
storage:
  driver: sqlite
submission:
  require_assessor: false
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://quiz@localhost/quiz", cfg.Postgres.URL)
	assert.False(t, cfg.RequireAssessor())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	cfg.Storage.Driver = "turso"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage driver")

	cfg.Storage.Driver = DriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "requires postgres.url")

	cfg.Storage.Driver = DriverMemory
	cfg.Attempt.TTL = "soon"
	assert.ErrorContains(t, cfg.Validate(), "attempt.ttl")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTTLDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, TTLDuration("", 5*time.Minute))
	assert.Equal(t, 30*time.Second, TTLDuration("30s", 5*time.Minute))
	assert.Equal(t, 5*time.Minute, TTLDuration("nope", 5*time.Minute))
}
