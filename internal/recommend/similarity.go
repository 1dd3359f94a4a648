// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"math"
	"slices"

	"github.com/tomtom215/ratingrec/internal/ratings"
)

// Similarity returns the cosine similarity of a and b restricted to their
// co-rated items:
//
//	sim(a, b) = sum_i a[i]*b[i] / (sqrt(sum_i a[i]^2) * sqrt(sum_i b[i]^2)),  i in keys(a) ∩ keys(b)
//
// It is 0 when the vectors share no item or when either restricted norm is zero.
func Similarity(a, b ratings.Vector) float64 {
	sim, _ := cosine(a, b)
	return sim
}

// cosine returns the similarity and the number of co-rated items.
// Terms are summed in item order, so the result is bit-for-bit symmetric and
// stable across calls.
func cosine(a, b ratings.Vector) (float64, int) {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	common := make([]string, 0, len(small))
	for item := range small {
		if _, ok := large[item]; ok {
			common = append(common, item)
		}
	}
	if len(common) == 0 {
		return 0, 0
	}
	slices.Sort(common)

	var dot, normA, normB float64
	for _, item := range common {
		ra, rb := a[item], b[item]
		dot += ra * rb
		normA += ra * ra
		normB += rb * rb
	}

	if normA == 0 || normB == 0 {
		return 0, len(common)
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return min(1, max(-1, sim)), len(common)
}
