// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package config

import (
	"time"

	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

// Rating source kinds.
const (
	SourceJSON   = "json"
	SourceDuckDB = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Ratings   RatingsConfig   `koanf:"ratings"`
	Recommend RecommendConfig `koanf:"recommend"`
	Output    OutputConfig    `koanf:"output"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// RatingsConfig selects where ratings are read from.
type RatingsConfig struct {
	// Source is the input kind: json or duckdb.
	// Default: json
	Source string `koanf:"source" validate:"required,oneof=json duckdb"`

	// Path is the JSON file or DuckDB database file.
	// An empty path with the duckdb source opens an in-memory database.
	// Default: ratings.json
	Path string `koanf:"path" validate:"required_if=Source json"`

	// Query selects (user_id, item_id, score) rows from DuckDB.
	Query string `koanf:"query" validate:"required_if=Source duckdb"`
}

// RecommendConfig holds recommender settings.
type RecommendConfig struct {
	// TopN is the default number of recommendations.
	// Default: 3
	TopN int `koanf:"top_n" validate:"gte=0"`

	// MaxTopN caps requested result sizes. 0 means no cap.
	MaxTopN int `koanf:"max_top_n" validate:"gte=0"`

	// Workers is the number of goroutines per query. 0 means runtime.NumCPU().
	Workers int `koanf:"workers" validate:"gte=0,lte=1024"`

	// Timeout bounds a single query. 0 disables it.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`

	// MaxConcurrent bounds batch fan-out.
	// Default: 8
	MaxConcurrent int `koanf:"max_concurrent" validate:"gte=1"`

	// LogSimilarities logs every pairwise similarity.
	// Default: true
	LogSimilarities bool `koanf:"log_similarities"`

	// CacheEnabled caches results per store snapshot.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheSize is the maximum number of cached results.
	// Default: 1000
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// CacheTTL is how long a cached result stays valid.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// OutputConfig controls the report artifact.
type OutputConfig struct {
	// Path is the single-user report file. Empty disables the file.
	// Default: recommendations.txt
	Path string `koanf:"path"`

	// Format is report.FormatText (item: score lines) or report.FormatJSON.
	// Default: text
	Format string `koanf:"format" validate:"oneof=text json"`

	// BatchPath is the JSON report written in batch mode.
	// Default: recommendations.json
	BatchPath string `koanf:"batch_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Enabled writes metrics at exit.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// TextfilePath is where metrics are written, for node_exporter's textfile collector.
	TextfilePath string `koanf:"textfile_path" validate:"required_if=Enabled true"`
}

// Load reads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// EngineConfig converts the recommend section to an engine configuration.
func (c *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultTopN = c.TopN
	cfg.Limits.MaxTopN = c.MaxTopN
	cfg.Limits.Workers = c.Workers
	cfg.Limits.QueryTimeout = c.Timeout
	cfg.Limits.MaxConcurrentQueries = c.MaxConcurrent
	cfg.LogSimilarities = c.LogSimilarities
	cfg.Cache.Enabled = c.CacheEnabled
	cfg.Cache.MaxEntries = c.CacheSize
	cfg.Cache.TTL = c.CacheTTL
	return cfg
}

// LoggingInit converts the logging section for logging.Init.
func (c *LoggingConfig) LoggingInit() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}
