// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AI providers accepted in ai.provider.
const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
)

// PDF extractors accepted in parsers.pdf.extractor.
const (
	ExtractorNative    = "native"
	ExtractorPdftotext = "pdftotext"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Provider          string `mapstructure:"provider" yaml:"provider"`
		Model             string `mapstructure:"model" yaml:"model"`
		Project           string `mapstructure:"project" yaml:"project"`
		Location          string `mapstructure:"location" yaml:"location"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Parsers struct {
		PDF struct {
			Extractor string `mapstructure:"extractor" yaml:"extractor"`
		} `mapstructure:"pdf" yaml:"pdf"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Taxonomy struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"taxonomy" yaml:"taxonomy"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile is InitializeConfig with an explicit config file, which
// must exist. An empty path searches the default locations.
func InitializeConfigFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fin-ingest")
		v.AddConfigPath(".fin-ingest")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicit)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is also read from the unprefixed variable used by Google tooling
	if err := v.BindEnv("ai.api_key", "FIN_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Records export
	v.SetDefault("csv.delimiter", ",")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.project", "")
	v.SetDefault("ai.location", "us-central1")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("parsers.pdf.extractor", ExtractorNative)
	v.SetDefault("taxonomy.file", "")
	v.SetDefault("batch.workers", 0)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Parsers.PDF.Extractor {
	case ExtractorNative, ExtractorPdftotext:
	default:
		return fmt.Errorf("parsers.pdf.extractor must be '%s' or '%s', got: %s",
			ExtractorNative, ExtractorPdftotext, config.Parsers.PDF.Extractor)
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got: %d", config.Batch.Workers)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		switch config.AI.Provider {
		case ProviderGemini:
			if config.AI.APIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
			}
		case ProviderVertex:
			if config.AI.Project == "" {
				return fmt.Errorf("ai.project required when ai.provider is '%s'", ProviderVertex)
			}
		default:
			return fmt.Errorf("ai.provider must be '%s' or '%s', got: %s", ProviderGemini, ProviderVertex, config.AI.Provider)
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}
