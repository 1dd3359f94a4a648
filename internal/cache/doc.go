// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

/*
Package cache provides a thread-safe, generic LRU cache with TTL expiration.

The recommendation engine uses it to memoize query results per rating-store
snapshot, so repeated queries for the same user and result size skip the
neighbor scan.

# Overview

  - Fixed capacity: the least recently used entry is evicted on overflow
  - Per-cache TTL, checked lazily on Get
  - O(1) Get and Add (map plus doubly linked list)
  - Safe for concurrent use (sync.Mutex)

# Usage Example

	c := cache.NewLRU[[]recommend.Prediction](1000, 5*time.Minute)
	c.Add("rec:snapshot:3:alice", preds)

	if preds, ok := c.Get("rec:snapshot:3:alice"); ok {
	    // use cached predictions
	}

# Statistics

Stats reports hits, misses and current size. Hit and miss counts
are also exported as Prometheus counters by the caller (see package metrics).

# Limitations

  - Values are stored as given; callers that mutate slices must copy them
  - TTL is fixed per cache, not per entry
*/
package cache
