// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// DefaultTopN is the result size used when the caller does not pick one.
const DefaultTopN = 3

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`

	// LogSimilarities logs every pairwise similarity at info level.
	LogSimilarities bool `json:"log_similarities"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is used by RecommendDefault.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps requested result sizes. Zero means no cap.
	MaxTopN int `json:"max_top_n"`

	// Workers is the number of goroutines scanning neighbors per query.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// QueryTimeout bounds a single query. Zero disables the timeout.
	QueryTimeout time.Duration `json:"query_timeout"`

	// MaxConcurrentQueries bounds RecommendAll fan-out.
	MaxConcurrentQueries int `json:"max_concurrent_queries"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns on result caching.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached result stays valid.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached results.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN:          DefaultTopN,
			MaxTopN:              0,
			Workers:              0,
			QueryTimeout:         10 * time.Second,
			MaxConcurrentQueries: 8,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
		LogSimilarities: true,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 0 {
		return fmt.Errorf("limits.default_top_n must be non-negative, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < 0 {
		return fmt.Errorf("limits.max_top_n must be non-negative, got %d", c.Limits.MaxTopN)
	}
	if c.Limits.MaxTopN > 0 && c.Limits.DefaultTopN > c.Limits.MaxTopN {
		return fmt.Errorf("limits.default_top_n (%d) must not exceed limits.max_top_n (%d)",
			c.Limits.DefaultTopN, c.Limits.MaxTopN)
	}
	if c.Limits.Workers < 0 {
		return fmt.Errorf("limits.workers must be non-negative, got %d", c.Limits.Workers)
	}
	if c.Limits.QueryTimeout < 0 {
		return fmt.Errorf("limits.query_timeout must be non-negative, got %v", c.Limits.QueryTimeout)
	}
	if c.Limits.MaxConcurrentQueries < 1 {
		return fmt.Errorf("limits.max_concurrent_queries must be positive, got %d", c.Limits.MaxConcurrentQueries)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Nested structs hold only value types.
	return &Config{
		Limits:          c.Limits,
		Cache:           c.Cache,
		LogSimilarities: c.LogSimilarities,
	}
}

// workers resolves the effective worker count.
func (c *Config) workers() int {
	if c.Limits.Workers > 0 {
		return c.Limits.Workers
	}
	return runtime.NumCPU()
}
