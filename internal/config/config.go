// Package config loads CLI configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings of the veridoc CLI.
// Per-invocation settings (input paths, output format) stay on the command
// line; these are the knobs an operator sets once per deployment.
type Config struct {
	// OCR Configuration
	OCRLanguage string

	// PDF Configuration
	PDFRenderDPI int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		OCRLanguage:   getEnv("VERIDOC_OCR_LANGUAGE", "eng"),
		PDFRenderDPI:  getEnvInt("VERIDOC_PDF_DPI", 200),
		LogLevel:      getEnv("VERIDOC_LOG_LEVEL", "info"),
		LogFormat:     getEnv("VERIDOC_LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("VERIDOC_LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("VERIDOC_LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.PDFRenderDPI < 72 || c.PDFRenderDPI > 600 {
		return fmt.Errorf("VERIDOC_PDF_DPI must be between 72 and 600, got %d", c.PDFRenderDPI)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
