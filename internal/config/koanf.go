// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/ratingrec/internal/ratings"
	"github.com/tomtom215/ratingrec/internal/recommend"
	"github.com/tomtom215/ratingrec/internal/report"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ratingrec/config.yaml",
	"/etc/ratingrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "RATINGREC_CONFIG"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Ratings: RatingsConfig{
			Source: SourceJSON,
			Path:   "ratings.json",
			Query:  ratings.DefaultDuckDBQuery,
		},
		Recommend: RecommendConfig{
			TopN:            recommend.DefaultTopN,
			MaxTopN:         0,
			Workers:         0, // 0 = use runtime.NumCPU()
			Timeout:         10 * time.Second,
			MaxConcurrent:   8,
			LogSimilarities: true,
			CacheEnabled:    true,
			CacheSize:       1000,
			CacheTTL:        5 * time.Minute,
		},
		Output: OutputConfig{
			Path:      "recommendations.txt",
			Format:    report.FormatText,
			BatchPath: "recommendations.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled:      false,
			TextfilePath: "",
		},
	}
}

// LoadWithKoanf loads configuration using koanf with layered sources:
//  1. struct defaults
//  2. YAML config file, if one is found
//  3. environment variables
//
// Later layers override earlier ones.
func LoadWithKoanf() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is LoadWithKoanf with an explicit config file path.
// An empty path skips the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RATINGREC_TOP_N -> recommend.top_n
	// LOG_LEVEL -> logging.level
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Ratings source
	"ratingrec_source": "ratings.source",
	"ratingrec_input":  "ratings.path",
	"ratingrec_query":  "ratings.query",

	// Recommender
	"ratingrec_top_n":            "recommend.top_n",
	"ratingrec_max_top_n":        "recommend.max_top_n",
	"ratingrec_workers":          "recommend.workers",
	"ratingrec_timeout":          "recommend.timeout",
	"ratingrec_max_concurrent":   "recommend.max_concurrent",
	"ratingrec_log_similarities": "recommend.log_similarities",
	"ratingrec_cache_enabled":    "recommend.cache_enabled",
	"ratingrec_cache_size":       "recommend.cache_size",
	"ratingrec_cache_ttl":        "recommend.cache_ttl",

	// Output
	"ratingrec_output":            "output.path",
	"ratingrec_output_format":     "output.format",
	"ratingrec_output_batch_path": "output.batch_path",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"ratingrec_metrics_enabled":  "metrics.enabled",
	"ratingrec_metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc converts environment variable names to koanf paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never reach the config.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
