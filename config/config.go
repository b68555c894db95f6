package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string
	LogLevel       string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Edamam recipe search API
	EdamamAppID         string
	EdamamAppKey        string
	EdamamAccountUser   string
	EdamamBaseURL       string
	EdamamRatePerMinute int

	// Inbound requests allowed per client per minute on search endpoints
	RateLimitPerMinute int

	// Image mirroring for saved recipes; empty bucket disables it
	S3BucketName string
	AWSRegion    string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	src := sourceFor(env)
	cfg := &Config{}

	cfg.ServerPort = src.get("SERVER_PORT", "8080")
	cfg.ServerHost = src.get("SERVER_HOST", "0.0.0.0")
	cfg.AllowedOrigins = splitList(src.get("ALLOWED_ORIGINS", "http://localhost:5173"))
	cfg.LogLevel = src.get("LOG_LEVEL", "info")

	cfg.DBDriver = src.get("DB_DRIVER", DriverPostgres)
	cfg.DBHost = src.get("DB_HOST", "localhost")
	cfg.DBPort = src.get("DB_PORT", "5432")
	cfg.DBUser = src.get("DB_USER", "")
	cfg.DBPassword = src.get("DB_PASSWORD", "")
	cfg.DBName = src.get("DB_NAME", "recipe_finder")
	cfg.DBSSLMode = src.get("DB_SSL_MODE", "disable")
	cfg.SQLitePath = src.get("SQLITE_PATH", "recipe-finder.db")

	cfg.RedisHost = src.get("REDIS_HOST", "localhost")
	cfg.RedisPort = src.get("REDIS_PORT", "6379")
	cfg.RedisPassword = src.get("REDIS_PASSWORD", "")
	cfg.RedisURL = src.get("REDIS_URL", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.JWTSecret = src.get("JWT_SECRET", "")

	cfg.EdamamAppID = src.get("EDAMAM_APP_ID", "")
	cfg.EdamamAppKey = src.get("EDAMAM_APP_KEY", "")
	cfg.EdamamAccountUser = src.get("EDAMAM_ACCOUNT_USER", "")
	cfg.EdamamBaseURL = src.get("EDAMAM_BASE_URL", "")

	cfg.S3BucketName = src.get("S3_BUCKET_NAME", "")
	cfg.AWSRegion = src.get("AWS_REGION", "us-east-1")

	var errs []string
	var err error
	if cfg.EdamamRatePerMinute, err = src.getInt("EDAMAM_RATE_PER_MINUTE", 10); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.RateLimitPerMinute, err = src.getInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load %s configuration:\n%s", env, strings.Join(errs, "\n"))
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// HasEdamamCredentials reports whether both API credentials are configured
func (c *Config) HasEdamamCredentials() bool {
	return c.EdamamAppID != "" && c.EdamamAppKey != ""
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// source resolves a key from environment variables and Docker secrets in an
// environment-specific order
type source struct {
	secretsFirst bool
	secretsOff   bool
}

func sourceFor(env Environment) source {
	switch env {
	case CI:
		// CI uses GitHub Actions variables and secrets only
		return source{secretsOff: true}
	case Production:
		return source{secretsFirst: true}
	default:
		return source{}
	}
}

func (s source) get(key, def string) string {
	secretName := strings.ToLower(key)
	if s.secretsFirst {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if !s.secretsOff && !s.secretsFirst {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	return def
}

func (s source) getInt(key string, def int) (int, error) {
	raw := s.get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
