// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package main is the ratingrec command-line tool.
//
// ratingrec loads a user-item rating matrix, asks for a target user and
// prints the items that similar users rated highly, one "item: score" line
// each. The list is also written to a report file.
//
// # Startup Order
//
//  1. Configuration: koanf defaults, optional YAML file, environment, then flags
//  2. Logging: zerolog configured from the logging section
//  3. Ratings: loaded from a JSON file or a DuckDB query and validated
//  4. Engine: recommend.Engine with cache, metrics and similarity logging
//  5. Query: single user, interactive loop or batch over all users
//  6. Metrics: Prometheus textfile written on exit when enabled
//
// # Flags
//
//	-config path    config file (default: $RATINGREC_CONFIG or ./config.yaml)
//	-input path     ratings source path, overrides ratings.path
//	-output path    report path, overrides output.path
//	-user id        target user; skips the prompt
//	-top n          number of recommendations (default: recommend.top_n)
//	-interactive    prompt repeatedly until EOF
//	-all            recommend for every user and write a JSON batch report
//
// # Example Usage
//
//	$ ratingrec -input ratings.json
//	target user: u1
//	recommendations:
//	c: 4.5
//
//	$ RATINGREC_SOURCE=duckdb RATINGREC_INPUT=ratings.duckdb ratingrec -all
package main
