package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredFields lists the settings each environment cannot run without.
var requiredFields = map[Environment][]string{
	Development: {"SERVER_PORT", "DB_HOST", "DB_NAME", "REDIS_HOST"},
	Test:        {"SERVER_PORT", "DB_HOST", "DB_NAME", "REDIS_HOST"},
	CI:          {"SERVER_PORT", "DB_HOST", "DB_NAME", "DB_PASSWORD", "REDIS_HOST"},
	Production:  {"SERVER_PORT", "DB_HOST", "DB_NAME", "DB_PASSWORD", "REDIS_HOST", "SESSION_SECRET"},
}

func (c *Config) field(name string) string {
	switch name {
	case "SERVER_PORT":
		return c.ServerPort
	case "DB_HOST":
		return c.DBHost
	case "DB_NAME":
		return c.DBName
	case "DB_PASSWORD":
		return c.DBPassword
	case "REDIS_HOST":
		if c.RedisURL != "" {
			return c.RedisURL
		}
		return c.RedisHost
	case "SESSION_SECRET":
		return c.SessionSecret
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	for _, name := range requiredFields[cfg.Environment] {
		if cfg.field(name) == "" {
			errs = append(errs, ValidationError{Field: name, Message: "is required"})
		}
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{Field: "SESSION_TTL", Message: "must be positive"})
	}
	if cfg.SearchRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "SEARCH_RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.MaxCombinationSetSize < 0 {
		errs = append(errs, ValidationError{Field: "MAX_COMBINATION_SET_SIZE", Message: "must not be negative"})
	}
	if cfg.Environment == Production && len(cfg.SessionSecret) < 32 && cfg.SessionSecret != "" {
		errs = append(errs, ValidationError{Field: "SESSION_SECRET", Message: "must be at least 32 characters"})
	}

	return errors.Join(errs...)
}
