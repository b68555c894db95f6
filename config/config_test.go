package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "ALLOWED_ORIGINS", "DB_DRIVER", "DB_HOST",
		"DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "SQLITE_PATH", "JWT_SECRET",
		"EDAMAM_APP_ID", "EDAMAM_APP_KEY", "EDAMAM_RATE_PER_MINUTE", "RATE_LIMIT_PER_MINUTE",
		"REDIS_URL", "S3_BUCKET_NAME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EDAMAM_APP_ID", "app")
	t.Setenv("EDAMAM_APP_KEY", "key")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.EdamamRatePerMinute)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.True(t, cfg.HasEdamamCredentials())
}

func TestLoadConfig_SecretsFallback(t *testing.T) {
	clearEnv(t)
	dir := os.Getenv("SECRETS_DIR")
	for name, value := range map[string]string{
		"db_user":        "secret-user",
		"db_password":    "secret-pass",
		"jwt_secret":     "secret-jwt\n",
		"edamam_app_key": "secret-key",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0600))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-user", cfg.DBUser)
	assert.Equal(t, "secret-jwt", cfg.JWTSecret)
	assert.Equal(t, "secret-key", cfg.EdamamAppKey)
	assert.False(t, cfg.HasEdamamCredentials())
}

func TestLoadConfig_CIIgnoresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("CI", "true")
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file"), 0600))
	t.Setenv("DB_DRIVER", DriverSQLite)

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "http")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("EDAMAM_RATE_PER_MINUTE", "ten")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "EDAMAM_RATE_PER_MINUTE must be an integer")

	t.Setenv("EDAMAM_RATE_PER_MINUTE", "")
	_, err = LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := map[string]bool{}
	for _, v := range verrs {
		fields[v.Field] = true
	}
	assert.True(t, fields["SERVER_PORT"])
	assert.True(t, fields["DB_DRIVER"])
	assert.True(t, fields["JWT_SECRET"])
}

func TestValidateConfig_SQLiteNotInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DBDriver:   DriverSQLite,
		SQLitePath: "x.db",
		JWTSecret:  "0123456789abcdef0123456789abcdef",
	})
	assert.ErrorContains(t, err, "sqlite is not allowed in production")
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())
	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfig_EmptyAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_ORIGINS", " , ")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "ALLOWED_ORIGINS", verrs[0].Field)
}
