package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment.
// Edamam credentials are not required here: the recipe client reports missing credentials on
// every call instead.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if len(cfg.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "ALLOWED_ORIGINS", Message: "at least one origin is required"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "required for postgres"})
		}
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{Field: "DB_USER", Message: "required for postgres"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_NAME", Message: "required for postgres"})
		}
		if cfg.DBPassword == "" && env != Test {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "required for postgres"})
		}
	case DriverSQLite:
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "required"})
	} else if env == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}

	if cfg.EdamamRatePerMinute < 0 {
		errs = append(errs, ValidationError{Field: "EDAMAM_RATE_PER_MINUTE", Message: "must not be negative"})
	}
	if cfg.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
