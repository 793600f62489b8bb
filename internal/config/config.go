// Package config provides Viper-based hierarchical configuration for the
// statement-verify application: defaults, then an optional config file,
// then environment variables, validated at construction time.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Analysis struct {
		// MaxPages caps how many rendered pages are sent to the
		// perception service per document.
		MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`
		// ClassifyPages caps how many pages the cheap document-type
		// check looks at.
		ClassifyPages int `mapstructure:"classify_pages" yaml:"classify_pages"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Render struct {
		// DPI used when rasterizing statement pages.
		DPI int `mapstructure:"dpi" yaml:"dpi"`
	} `mapstructure:"render" yaml:"render"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads the configuration: defaults, then an optional
// config.yaml, then STMTV_*-prefixed environment variables, with the
// Gemini API key bound to its conventional unprefixed variable.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-verify")
	v.AddConfigPath(".statement-verify")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STMTV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 60)

	v.SetDefault("analysis.max_pages", 20)
	v.SetDefault("analysis.classify_pages", 2)

	v.SetDefault("render.dpi", 150)

	v.SetDefault("report.format", "json")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.AI.Model == "" {
		return fmt.Errorf("ai.model must not be empty")
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 600 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 600, got: %d", config.AI.TimeoutSeconds)
	}

	if config.Analysis.MaxPages < 1 {
		return fmt.Errorf("analysis.max_pages must be at least 1, got: %d", config.Analysis.MaxPages)
	}

	if config.Analysis.ClassifyPages < 1 || config.Analysis.ClassifyPages > config.Analysis.MaxPages {
		return fmt.Errorf("analysis.classify_pages must be between 1 and analysis.max_pages, got: %d", config.Analysis.ClassifyPages)
	}

	if config.Render.DPI < 50 || config.Render.DPI > 600 {
		return fmt.Errorf("render.dpi must be between 50 and 600, got: %d", config.Render.DPI)
	}

	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
