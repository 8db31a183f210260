// Package config loads and validates the batscan configuration from a YAML
// file with environment variable overrides (prefix BATSCAN).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lightsout-hb/batscan/internal/match"
)

// Config represents the complete application configuration
type Config struct {
	Scan      ScanConfig      `mapstructure:"scan"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Thumbnail ThumbnailConfig `mapstructure:"thumbnail"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ScanConfig holds detection pipeline configuration
type ScanConfig struct {
	Method     string  `mapstructure:"method"`     // template match method name
	Threshold  float64 `mapstructure:"threshold"`  // 0 means "use the method default"
	Resolution int     `mapstructure:"resolution"` // sampled frames per second
	DebounceMS float64 `mapstructure:"debounce_ms"`
}

// OCRConfig holds name recognition configuration
type OCRConfig struct {
	Enabled             bool    `mapstructure:"enabled"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// ThumbnailConfig holds thumbnail extraction configuration
type ThumbnailConfig struct {
	Threshold    float64 `mapstructure:"threshold"`     // minimum SSIM score
	ScanDuration int     `mapstructure:"scan_duration"` // seconds scanned from video start
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from an optional file and environment variables.
// An empty path yields pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("BATSCAN")
	// Nested keys use dots; the env form is BATSCAN_SCAN_METHOD.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.method", "TM_CCOEFF_NORMED")
	v.SetDefault("scan.threshold", 0.0)
	v.SetDefault("scan.resolution", 3)
	v.SetDefault("scan.debounce_ms", 2000)

	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.confidence_threshold", 0.2)

	v.SetDefault("thumbnail.threshold", 0.35)
	v.SetDefault("thumbnail.scan_duration", 120)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// EffectiveThreshold returns the configured threshold override, nil when the
// method default should apply.
func (c *ScanConfig) EffectiveThreshold() *float64 {
	if c.Threshold == 0 {
		return nil
	}
	t := c.Threshold
	return &t
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if _, err := match.ResolveThreshold(c.Scan.Method, c.Scan.EffectiveThreshold()); err != nil {
		return fmt.Errorf("scan.method: %w", err)
	}
	if c.Scan.Resolution < 1 {
		return fmt.Errorf("scan.resolution must be at least 1")
	}
	if c.Scan.DebounceMS < 0 {
		return fmt.Errorf("scan.debounce_ms must not be negative")
	}

	if c.OCR.ConfidenceThreshold < 0.0 || c.OCR.ConfidenceThreshold >= 1.0 {
		return fmt.Errorf("ocr.confidence_threshold must be in [0.0, 1.0)")
	}

	if c.Thumbnail.Threshold < 0.0 || c.Thumbnail.Threshold > 1.0 {
		return fmt.Errorf("thumbnail.threshold must be between 0.0 and 1.0")
	}
	if c.Thumbnail.ScanDuration < 1 {
		return fmt.Errorf("thumbnail.scan_duration must be at least 1 second")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}
