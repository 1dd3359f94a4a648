// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package recommend implements user-based collaborative filtering over an
// immutable ratings.Store.
//
// # Algorithm
//
// For a target user u, every other user v is weighted by the cosine
// similarity of their rating vectors, computed only over the items both
// have rated. For each item i that u has not rated:
//
//	weighted(i) = sum_v sim(u, v) * r_v(i)
//	simSum(i)   = sum_v sim(u, v)
//	score(i)    = round(weighted(i) / simSum(i), 2)
//
// Items with simSum(i) == 0 are dropped. Results are sorted by score
// descending, then item ID ascending, and truncated to the requested size.
//
// # Usage
//
// The pure entry point is Recommend:
//
//	preds, err := recommend.Recommend(ctx, store, "alice", 3)
//
// Engine wraps it with configured limits, a result cache keyed by store
// snapshot, structured logging and Prometheus metrics:
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	preds, err := engine.RecommendDefault(ctx, store, "alice")
//
// # Observability
//
// Per-pair similarities and per-query summaries are delivered to an
// Observer rather than written to a global logger. LogObserver and
// MetricsObserver are the built-in implementations; Observers combines
// several.
//
// # Determinism
//
// Cosine terms are summed in item order and clamped to [-1, 1], so
// Similarity is exactly symmetric and stable across calls. Similarities are
// computed in parallel, but per-item sums are built sequentially in sorted
// user order, so results do not depend on the worker count or the machine.
// Scores are rounded from the exact binary value, with exact halves going
// to even.
//
// # Thread Safety
//
// Recommend and all Engine methods are safe for concurrent use.
package recommend
