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

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: test-forms\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test-forms", cfg.App.Name)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTLDuration())
	assert.Equal(t, "applicant-form:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, ":8080", cfg.Metrics.Address)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadFromFile_RedisStore(t *testing.T) {
	path := writeConfig(t, `
session:
  store: redis
  ttl: 600
database:
  redis:
    address: localhost:6379
    db: 2
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTLDuration())
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.Equal(t, 2, cfg.Database.Redis.DB)
}

func TestLoadFromFile_EnvOverridesAndPlaceholders(t *testing.T) {
	t.Setenv("SESSION_TTL", "120")
	t.Setenv("FORMS_REDIS_PASSWORD", "s3cret")
	path := writeConfig(t, `
session:
  store: redis
database:
  redis:
    address: redis:6379
    password: ${FORMS_REDIS_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Session.TTL)
	assert.Equal(t, "s3cret", cfg.Database.Redis.Password)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "redis without address",
			body: "session:\n  store: redis\n",
			want: "database.redis.address is required",
		},
		{
			name: "unknown store",
			body: "session:\n  store: postgres\n",
			want: "session.store must be",
		},
		{
			name: "sample ratio out of range",
			body: "tracing:\n  sample_ratio: 2\n",
			want: "tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RepositoryConfig(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "applicant-forms", cfg.App.Name)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 1800, cfg.Session.TTL)
	assert.False(t, cfg.Metrics.Enabled)
}
