package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBSchema   string

	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Dashboard sessions
	SessionSecret   string
	SessionTTL      time.Duration
	SearchRateLimit int

	// Export
	S3BucketName string
	AWSRegion    string

	MaxCombinationSetSize int
}

var defaults = map[string]any{
	"SERVER_PORT":              "8080",
	"SERVER_HOST":              "0.0.0.0",
	"CORS_ORIGINS":             "http://localhost:5173",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "postgres",
	"DB_NAME":                  "symptomdiary",
	"DB_SSL_MODE":              "disable",
	"DB_SCHEMA":                "data",
	"MIGRATIONS_DIR":           "migrations",
	"REDIS_HOST":               "localhost",
	"REDIS_PORT":               "6379",
	"REDIS_DB":                 0,
	"SESSION_TTL":              "2h",
	"SEARCH_RATE_LIMIT":        30,
	"AWS_REGION":               "eu-central-1",
	"MAX_COMBINATION_SET_SIZE": 12,
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	v := newViper()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(v, cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(v, cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(v, cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// loadCommon reads every non-secret setting.
func loadCommon(v *viper.Viper, cfg *Config) error {
	cfg.ServerPort = v.GetString("SERVER_PORT")
	cfg.ServerHost = v.GetString("SERVER_HOST")
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	cfg.DBHost = v.GetString("DB_HOST")
	cfg.DBPort = v.GetString("DB_PORT")
	cfg.DBUser = v.GetString("DB_USER")
	cfg.DBName = v.GetString("DB_NAME")
	cfg.DBSSLMode = v.GetString("DB_SSL_MODE")
	cfg.DBSchema = v.GetString("DB_SCHEMA")
	cfg.MigrationsDir = v.GetString("MIGRATIONS_DIR")
	cfg.RedisHost = v.GetString("REDIS_HOST")
	cfg.RedisPort = v.GetString("REDIS_PORT")
	cfg.RedisDB = v.GetInt("REDIS_DB")
	cfg.RedisURL = v.GetString("REDIS_URL")
	cfg.SearchRateLimit = v.GetInt("SEARCH_RATE_LIMIT")
	cfg.S3BucketName = v.GetString("S3_BUCKET_NAME")
	cfg.AWSRegion = v.GetString("AWS_REGION")
	cfg.MaxCombinationSetSize = v.GetInt("MAX_COMBINATION_SET_SIZE")

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl
	return nil
}

// loadCIConfig loads configuration for CI environment using ONLY environment variables
func loadCIConfig(v *viper.Viper, cfg *Config) error {
	if err := loadCommon(v, cfg); err != nil {
		return err
	}

	cfg.DBPassword = firstNonEmpty(v.GetString("DB_PASSWORD"), v.GetString("TEST_DB_PASSWORD"))
	if cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.RedisPassword = firstNonEmpty(v.GetString("REDIS_PASSWORD"), v.GetString("TEST_REDIS_PASSWORD"))
	cfg.SessionSecret = firstNonEmpty(v.GetString("SESSION_SECRET"), v.GetString("TEST_SESSION_SECRET"))
	return nil
}

// loadDevConfig loads configuration for development environment. Secrets
// come from the environment first and fall back to the secrets directory.
func loadDevConfig(v *viper.Viper, cfg *Config) error {
	if err := loadCommon(v, cfg); err != nil {
		return err
	}

	cfg.DBPassword = firstNonEmpty(v.GetString("DB_PASSWORD"), readSecret("db_password"), "postgres")
	cfg.RedisPassword = firstNonEmpty(v.GetString("REDIS_PASSWORD"), readSecret("redis_password"))
	cfg.SessionSecret = firstNonEmpty(v.GetString("SESSION_SECRET"), readSecret("session_secret"), "development-session-secret")
	return nil
}

// loadProdConfig loads configuration for production environment; secrets
// must come from Docker secrets.
func loadProdConfig(v *viper.Viper, cfg *Config) error {
	if err := loadCommon(v, cfg); err != nil {
		return err
	}

	cfg.DBUser = firstNonEmpty(readSecret("db_user"), cfg.DBUser)
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.SessionSecret = readSecret("session_secret")
	cfg.RedisURL = firstNonEmpty(readSecret("redis_url"), cfg.RedisURL)
	return nil
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

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
	if c.DBSchema != "" {
		dsn += " search_path=" + c.DBSchema
	}
	return dsn
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
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
