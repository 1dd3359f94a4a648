// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package ratings owns the validated, in-memory sparse rating matrix.
//
// # Lifecycle
//
// A Store is built exactly once from raw user -> item -> score data and is
// immutable afterwards:
//
//	store, err := ratings.Load(raw)
//	if err != nil {
//	    var invalid *ratings.InvalidRatingError
//	    if errors.As(err, &invalid) {
//	        // invalid.User, invalid.Item, invalid.Score
//	    }
//	    return err
//	}
//
// Every score must satisfy 0 <= score <= 5. The first violation rejects the
// whole load; no partial store is ever produced.
//
// # Sources
//
// Raw data reaches Load through one of the loaders:
//
//   - LoadJSON / ReadJSON: nested JSON object {"user": {"item": score}}
//   - LoadDuckDB: any DuckDB query returning (user_id, item_id, score) rows
//
// Loaders report unreadable or malformed input as *SourceError and then
// delegate validation to Load or FromRatings.
//
// # Thread Safety
//
// A Store is read-only once constructed and may be shared by any number of
// concurrent readers without locking. Callers must not mutate the Vector
// values returned by RatingsOf or AllUsers.
package ratings
