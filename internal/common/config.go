package common

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration
type Config struct {
	Paths   PathsConfig
	Run     RunConfig
	Logging LoggingConfig
}

// PathsConfig holds the registry and output locations
type PathsConfig struct {
	InputDir           string
	AccommodationsXLSX string
	ExceptionsJSON     string
	PaidBillsDB        string
	ExportDir          string
	AccountingXLSX     string
	HistoricXLSX       string
}

// RunConfig holds per-run behavior switches
type RunConfig struct {
	RecordPaid bool
	Timeout    time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			InputDir:           getEnv("BILLS_INPUT_DIR", ""),
			AccommodationsXLSX: getEnv("BILLS_ACCOMMODATIONS", "accommodations.xlsx"),
			ExceptionsJSON:     getEnv("BILLS_EXCEPTIONS", "exceptions.json"),
			PaidBillsDB:        getEnv("BILLS_PAID_DB", "paid_bills.db"),
			ExportDir:          getEnv("BILLS_EXPORT_DIR", "./exports"),
			AccountingXLSX:     getEnv("BILLS_ACCOUNTING", filepath.Join("exports", "accounting.xlsx")),
			HistoricXLSX:       getEnv("BILLS_HISTORIC", filepath.Join("exports", "historic.xlsx")),
		},
		Run: RunConfig{
			RecordPaid: getEnv("BILLS_RECORD_PAID", "true") == "true",
			Timeout:    getEnvAsDuration("BILLS_RUN_TIMEOUT", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level: getEnv("BILLS_LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Paths.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "BILLS_INPUT_DIR is required", ErrInvalidInput)
	}
	if c.Paths.AccommodationsXLSX == "" {
		return NewAppError("CONFIG_ERROR", "BILLS_ACCOMMODATIONS is required", ErrInvalidInput)
	}
	return nil
}
