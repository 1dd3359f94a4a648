// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

/*
Package metrics provides Prometheus metrics for the recommender.

Ratingrec is a batch/CLI tool, so metrics are not served over HTTP. Instead
the registry is dumped once at process exit with WriteTextfile, in the
format read by the node_exporter textfile collector:

	metrics.WriteTextfile("/var/lib/node_exporter/ratingrec.prom")

# Available Metrics

Similarity Metrics:
  - ratingrec_similarity_computations_total: pairwise similarities computed (counter)
  - ratingrec_zero_overlap_pairs_total: pairs with no co-rated item (counter)

Query Metrics:
  - ratingrec_queries_total: queries by outcome (counter)
    Labels: outcome (ok, empty, unknown_user, cancelled, error)
  - ratingrec_query_duration_seconds: query latency (histogram)
  - ratingrec_predictions_returned: predictions per query (histogram)

Store Metrics:
  - ratingrec_store_users, ratingrec_store_items, ratingrec_store_ratings (gauges)
  - ratingrec_store_load_duration_seconds: load latency (histogram)
    Labels: source (json, duckdb)
  - ratingrec_store_load_errors_total: failed loads (counter)
    Labels: source, error_type (invalid_rating, source)

Cache Metrics:
  - ratingrec_cache_hits_total, ratingrec_cache_misses_total (counters)
*/
package metrics
