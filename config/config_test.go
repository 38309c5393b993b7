package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "APP_ENV", "ENV", "DB_PASSWORD", "REDIS_PASSWORD", "SESSION_SECRET", "REDIS_URL", "S3_BUCKET_NAME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "diary")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "diary", cfg.DBName)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "symptomdiary", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "data", cfg.DBSchema)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30, cfg.SearchRateLimit)
	assert.Equal(t, 12, cfg.MaxCombinationSetSize)
	assert.Empty(t, cfg.S3BucketName)
}

func TestLoadConfigReadsSecretFiles(t *testing.T) {
	isolate(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("from-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DBPassword)
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadConfigCIRequiresPassword(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "true")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("TEST_DB_PASSWORD", "ci-pass")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "ci-pass", cfg.DBPassword)
}

func TestInvalidSessionTTL(t *testing.T) {
	isolate(t)
	t.Setenv("SESSION_TTL", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "h", DBPort: "1", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable", DBSchema: "data"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable search_path=data", cfg.DSN())
}
