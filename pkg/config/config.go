// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration. All file paths are
// externally supplied so the core stages can be pointed at arbitrary
// input and output locations.
type Config struct {
	// Input
	RawDataPath string

	// Flat-file outputs
	CleanedDataPath string
	ValidationPath  string
	AnomaliesPath   string
	ChartsDir       string
	ReportPath      string

	// Analysis settings
	MetricColumn string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables, falling back to the default project layout.
func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		RawDataPath:     getEnv("RAW_DATA_PATH", filepath.Join("data", "raw", "wnba_raw.csv")),
		CleanedDataPath: getEnv("CLEANED_DATA_PATH", filepath.Join("data", "cleaned", "wnba_cleaned.csv")),
		ValidationPath:  getEnv("VALIDATION_PATH", filepath.Join("data", "validated", "validation_issues.csv")),
		AnomaliesPath:   getEnv("ANOMALIES_PATH", filepath.Join("data", "anomalies", "anomalies.csv")),
		ChartsDir:       getEnv("CHARTS_DIR", filepath.Join("visuals", "charts")),
		ReportPath:      getEnv("REPORT_PATH", filepath.Join("reports", "wnba_data_quality_report.pdf")),
		MetricColumn:    getEnv("METRIC_COLUMN", "points_per_game"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.RawDataPath == "" {
		return errors.New("raw data path is required")
	}
	if c.CleanedDataPath == "" {
		return errors.New("cleaned data path is required")
	}
	if c.ValidationPath == "" {
		return errors.New("validation output path is required")
	}
	if c.AnomaliesPath == "" {
		return errors.New("anomalies output path is required")
	}
	if c.ChartsDir == "" {
		return errors.New("charts directory is required")
	}
	if c.ReportPath == "" {
		return errors.New("report output path is required")
	}
	if c.MetricColumn == "" {
		return errors.New("metric column is required")
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
