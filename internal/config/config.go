package config

import (
	"fmt"
	"os"
	"strconv"

	"invoicer/internal/logger"
)

// Config holds all application settings, loaded from the environment. Every
// key has a working default: a fresh checkout generates invoices into the
// current directory with state files beside it.
type Config struct {
	// Flat-file storage
	MetadataFile string // invoice number sequence, last-used values, option flags
	ClientsFile  string // read-only predefined client directory
	OutputDir    string // where rendered invoice PDFs are written

	// Invoice defaults
	DefaultDueDays int // payment term applied when the user gives none

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	dueDays, err := strconv.Atoi(getEnv("INVOICE_DEFAULT_DUE_DAYS", "15"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: INVOICE_DEFAULT_DUE_DAYS must be an integer: %w", err)
	}

	config := &Config{
		MetadataFile:   getEnv("INVOICE_METADATA_FILE", "invoice_metadata.json"),
		ClientsFile:    getEnv("INVOICE_CLIENTS_FILE", "clients.json"),
		OutputDir:      getEnv("INVOICE_OUTPUT_DIR", "."),
		DefaultDueDays: dueDays,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.MetadataFile == "" {
		return fmt.Errorf("INVOICE_METADATA_FILE cannot be empty")
	}
	if c.ClientsFile == "" {
		return fmt.Errorf("INVOICE_CLIENTS_FILE cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("INVOICE_OUTPUT_DIR cannot be empty")
	}
	if c.DefaultDueDays < 0 {
		return fmt.Errorf("INVOICE_DEFAULT_DUE_DAYS cannot be negative")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
