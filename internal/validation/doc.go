// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates field errors into
// messages keyed by koanf paths, so a bad value in config.yaml is reported as
// "recommend.top_n must be at least 0" rather than by Go field name.
//
// # Quick Start
//
//	type RecommendConfig struct {
//	    TopN    int    `koanf:"top_n" validate:"gte=0"`
//	    Workers int    `koanf:"workers" validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    for _, fe := range verr.Fields() {
//	        fmt.Println(fe.Field(), fe.Tag())
//	    }
//	}
//
// # Thread Safety
//
// GetValidator initializes the validator once; the instance caches struct
// metadata and is safe for concurrent use.
package validation
