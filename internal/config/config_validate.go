// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package config

import (
	"fmt"

	"github.com/tomtom215/ratingrec/internal/validation"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateOutput()
}

// validateRecommend checks cross-field limits and the derived engine config.
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.MaxTopN > 0 && r.TopN > r.MaxTopN {
		return fmt.Errorf("recommend.top_n (%d) must not exceed recommend.max_top_n (%d)", r.TopN, r.MaxTopN)
	}

	if r.CacheEnabled {
		if r.CacheSize < 1 {
			return fmt.Errorf("recommend.cache_size must be positive when recommend.cache_enabled=true")
		}
		if r.CacheTTL <= 0 {
			return fmt.Errorf("recommend.cache_ttl must be positive when recommend.cache_enabled=true")
		}
	}

	if err := r.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateOutput rejects writing the report over the input file.
func (c *Config) validateOutput() error {
	if c.Ratings.Path == "" {
		return nil
	}
	if c.Output.Path == c.Ratings.Path || c.Output.BatchPath == c.Ratings.Path {
		return fmt.Errorf("output path %q must differ from ratings.path", c.Ratings.Path)
	}
	return nil
}
