package config

import (
	"os"
	"strconv"

	"goregress/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Regression RegressionConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port      string
	AdminPort string
	GinMode   string
}

// RegressionConfig holds pipeline tuning knobs
type RegressionConfig struct {
	// Enumerator selects how candidate models are produced: "full" fits
	// one model over all resolved fields, "subsets" fits every non-empty
	// combination.
	Enumerator    string
	MaxSubsetVars int
	// KeepResiduals retains per-model residuals so results include
	// residual diagnostics.
	KeepResiduals bool
	MaxLogitIter  int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:   loadDatabaseConfig(),
		Server:     loadServerConfig(),
		Regression: loadRegressionConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     os.Getenv("DATABASE_URL"),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:      getEnvOrDefault("PORT", "8080"),
		AdminPort: getEnvOrDefault("ADMIN_PORT", "6060"),
		GinMode:   getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadRegressionConfig() RegressionConfig {
	return RegressionConfig{
		Enumerator:    getEnvOrDefault("REGRESSION_ENUMERATOR", "full"),
		MaxSubsetVars: getEnvIntOrDefault("REGRESSION_MAX_SUBSET_VARS", 8),
		KeepResiduals: getEnvBoolOrDefault("REGRESSION_KEEP_RESIDUALS", false),
		MaxLogitIter:  getEnvIntOrDefault("REGRESSION_MAX_LOGIT_ITER", 100),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	switch config.Regression.Enumerator {
	case "full", "subsets":
	default:
		return errors.ConfigInvalid("REGRESSION_ENUMERATOR must be \"full\" or \"subsets\"")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
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
