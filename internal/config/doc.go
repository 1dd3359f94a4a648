// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

/*
Package config provides centralized configuration management for Ratingrec.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:
  - Struct defaults (defaultConfig)
  - An optional YAML file: $RATINGREC_CONFIG, then config.yaml, config.yml,
    /etc/ratingrec/config.yaml, /etc/ratingrec/config.yml
  - Environment variables, through an explicit mapping table

# Configuration Structure

  - RatingsConfig: rating source (json file or DuckDB query)
  - RecommendConfig: top-N, workers, timeouts, cache and similarity logging
  - OutputConfig: report path and format
  - LoggingConfig: zerolog level, format and caller info
  - MetricsConfig: Prometheus textfile export

# Environment Variables

Ratings:
  - RATINGREC_SOURCE: json or duckdb (default: json)
  - RATINGREC_INPUT: ratings file or DuckDB database (default: ratings.json)
  - RATINGREC_QUERY: DuckDB query returning user_id, item_id, score

Recommender:
  - RATINGREC_TOP_N: default number of recommendations (default: 3)
  - RATINGREC_MAX_TOP_N: cap on requested size, 0 for none (default: 0)
  - RATINGREC_WORKERS: goroutines per query, 0 for NumCPU (default: 0)
  - RATINGREC_TIMEOUT: per-query timeout (default: 10s)
  - RATINGREC_MAX_CONCURRENT: batch fan-out limit (default: 8)
  - RATINGREC_LOG_SIMILARITIES: log each pairwise similarity (default: true)
  - RATINGREC_CACHE_ENABLED, RATINGREC_CACHE_SIZE, RATINGREC_CACHE_TTL

Output:
  - RATINGREC_OUTPUT: report file (default: recommendations.txt)
  - RATINGREC_OUTPUT_FORMAT: text or json (default: text)
  - RATINGREC_OUTPUT_BATCH_PATH: batch report (default: recommendations.json)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Metrics:
  - RATINGREC_METRICS_ENABLED: write a textfile at exit (default: false)
  - RATINGREC_METRICS_TEXTFILE: textfile path (required when enabled)

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Logging.LoggingInit())
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.Logger())

# Validation

Field rules are go-playground/validator struct tags, reported by koanf path
(e.g. "recommend.top_n must be greater than or equal to 0"). Cross-field rules
(top_n within max_top_n, cache sizing, output not overwriting the input) are
checked in Validate.
*/
package config
