// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package ratings

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRating is matched by every *InvalidRatingError via errors.Is.
var ErrInvalidRating = errors.New("invalid rating")

// InvalidRatingError reports a score outside the accepted [MinScore, MaxScore] range.
type InvalidRatingError struct {
	User  string
	Item  string
	Score float64
}

// Error implements the error interface.
func (e *InvalidRatingError) Error() string {
	if math.IsNaN(e.Score) {
		return fmt.Sprintf("invalid rating: user %q, item %q, score is missing or NaN", e.User, e.Item)
	}
	return fmt.Sprintf("invalid rating: user %q, item %q, score %v (must be between %v and %v)",
		e.User, e.Item, e.Score, MinScore, MaxScore)
}

// Is reports whether target is ErrInvalidRating.
func (e *InvalidRatingError) Is(target error) bool {
	return target == ErrInvalidRating
}

// SourceError reports a rating source that could not be read or parsed.
type SourceError struct {
	// Source identifies the input (file path, database path, "reader").
	Source string
	Err    error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("read ratings from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}
