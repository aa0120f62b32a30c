package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/errors"
)

// Catalog sources understood by the container
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceYAML     = "yaml"
	CatalogSourceXLSX     = "xlsx"
	CatalogSourceDatabase = "database"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig  `validate:"required"`
	Form      FormConfig    `validate:"required"`
	Catalog   CatalogConfig `validate:"required"`
	Database  DatabaseConfig
	Profiling ProfilingConfig
	Logging   LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string `validate:"required,numeric"`
	GinMode         string `validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration
}

// FormConfig describes where finished submissions are sent
type FormConfig struct {
	EndpointURL  string `validate:"required"`
	AutoRedirect bool
}

// CatalogConfig selects where phenomenon definitions come from
type CatalogConfig struct {
	Source string `validate:"oneof=builtin yaml xlsx database"`
	File   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL    string
	Driver string `validate:"oneof=postgres sqlite"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// LoggingConfig controls log verbosity and encoding
type LoggingConfig struct {
	Level  string
	Format string `validate:"oneof=console json"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Catalog:   *loadCatalogConfig(),
		Database:  *loadDatabaseConfig(),
		Profiling: *loadProfilingConfig(),
		Logging:   *loadLoggingConfig(),
	}

	formConfig, err := loadFormConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load form configuration")
	}
	config.Form = *formConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadFormConfig() (*FormConfig, error) {
	endpoint := strings.TrimSpace(os.Getenv("FORM_ENDPOINT_URL"))
	if endpoint == "" {
		return nil, errors.ConfigInvalid("FORM_ENDPOINT_URL is required")
	}

	return &FormConfig{
		EndpointURL:  endpoint,
		AutoRedirect: getEnvBoolOrDefault("AUTO_REDIRECT", false),
	}, nil
}

func loadCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Source: strings.ToLower(getEnvOrDefault("CATALOG_SOURCE", CatalogSourceBuiltin)),
		File:   getEnvOrDefault("CATALOG_FILE", ""),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:    getEnvOrDefault("DATABASE_URL", ""),
		Driver: getEnvOrDefault("DATABASE_DRIVER", "postgres"),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console")),
	}
}

func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}

	u, err := url.Parse(config.Form.EndpointURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid("FORM_ENDPOINT_URL must be an absolute http or https URL")
	}

	switch config.Catalog.Source {
	case CatalogSourceYAML, CatalogSourceXLSX:
		if config.Catalog.File == "" {
			return errors.ConfigInvalid("CATALOG_FILE is required for the " + config.Catalog.Source + " catalog source")
		}
	case CatalogSourceDatabase:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the database catalog source")
		}
	}

	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
