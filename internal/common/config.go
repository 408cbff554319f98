// Package common provides shared utilities for Betafolio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Betafolio
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the data directory for portfolio and watchlist files.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AnalysisConfig holds beta estimation parameters. Betas computed under one
// (benchmark, lookback) pair are not comparable to another — changing either
// invalidates any previously reported values.
type AnalysisConfig struct {
	Benchmark      string  `toml:"benchmark"`        // benchmark index ticker, e.g. "GSPC.INDX"
	LookbackDays   int     `toml:"lookback_days"`    // historical window for return series
	MinOverlapDays int     `toml:"min_overlap_days"` // minimum aligned observations for a reliable beta
	TargetBeta     float64 `toml:"target_beta"`      // default rebalancing target
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Analysis: AnalysisConfig{
			Benchmark:      "GSPC.INDX",
			LookbackDays:   504, // ~2 years of trading days
			MinOverlapDays: 30,
			TargetBeta:     1.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("BETAFOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("BETAFOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("BETAFOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("BETAFOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("BETAFOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.Clients.EODHD.APIKey = key
	}

	if bench := os.Getenv("BETAFOLIO_BENCHMARK"); bench != "" {
		config.Analysis.Benchmark = bench
	}

	if target := os.Getenv("BETAFOLIO_TARGET_BETA"); target != "" {
		if t, err := strconv.ParseFloat(target, 64); err == nil {
			config.Analysis.TargetBeta = t
		}
	}
}

// validate rejects analysis parameters that would make every beta undefined.
func validate(config *Config) error {
	if config.Analysis.Benchmark == "" {
		return fmt.Errorf("analysis.benchmark must not be empty")
	}
	if config.Analysis.MinOverlapDays < 2 {
		return fmt.Errorf("analysis.min_overlap_days must be at least 2, got %d", config.Analysis.MinOverlapDays)
	}
	if config.Analysis.LookbackDays < config.Analysis.MinOverlapDays {
		return fmt.Errorf("analysis.lookback_days (%d) must cover min_overlap_days (%d)",
			config.Analysis.LookbackDays, config.Analysis.MinOverlapDays)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
