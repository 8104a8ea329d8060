// Package config loads client configuration from defaults, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client application.
type Config struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	SessionDBPath   string        `mapstructure:"session_db_path"`
	HistoryPageSize int           `mapstructure:"history_page_size"`
	ResultPageSize  int           `mapstructure:"result_page_size"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Load reads configuration. configPath may be empty, in which case
// moneytalk.yaml in the working directory is used when present; a missing
// file is not an error, defaults and environment variables still apply.
// Environment variables use the MONEYTALK_ prefix, e.g. MONEYTALK_API_BASE_URL.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_base_url", "http://localhost:5000")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("session_db_path", "moneytalk.db")
	v.SetDefault("history_page_size", 20)
	v.SetDefault("result_page_size", 10)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("MONEYTALK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("moneytalk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	if cfg.HistoryPageSize < 1 {
		return nil, fmt.Errorf("history_page_size must be positive")
	}
	if cfg.ResultPageSize < 1 {
		return nil, fmt.Errorf("result_page_size must be positive")
	}
	return &cfg, nil
}
