// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package ratings

import (
	"iter"
	"math"
	"slices"

	"github.com/google/uuid"
)

const (
	// MinScore is the lowest accepted rating.
	MinScore = 0.0
	// MaxScore is the highest accepted rating.
	MaxScore = 5.0
)

// Rating is a single (user, item, score) triple.
type Rating struct {
	UserID string  `json:"user_id"`
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// Vector maps item IDs to one user's scores.
type Vector map[string]float64

// Store is the immutable user -> Vector rating matrix.
type Store struct {
	id      string
	vectors map[string]Vector

	// users is sorted so enumeration is reproducible.
	users []string

	items      int
	numRatings int
}

// ValidScore reports whether score lies in [MinScore, MaxScore].
// NaN is never valid.
func ValidScore(score float64) bool {
	return !math.IsNaN(score) && score >= MinScore && score <= MaxScore
}

// Load validates raw and builds a Store from it.
// Users and items are checked in sorted order and the first out-of-range
// score is returned as *InvalidRatingError; no store is built in that case.
func Load(raw map[string]map[string]float64) (*Store, error) {
	users := sortedKeys(raw)

	for _, user := range users {
		itemScores := raw[user]
		for _, item := range sortedKeys(itemScores) {
			if score := itemScores[item]; !ValidScore(score) {
				return nil, &InvalidRatingError{User: user, Item: item, Score: score}
			}
		}
	}

	vectors := make(map[string]Vector, len(raw))
	for _, user := range users {
		vec := make(Vector, len(raw[user]))
		for item, score := range raw[user] {
			vec[item] = score
		}
		vectors[user] = vec
	}

	return newStore(vectors, users), nil
}

// FromRatings validates a flat list of triples and builds a Store from it.
// A repeated (user, item) pair keeps the last score seen.
func FromRatings(rs []Rating) (*Store, error) {
	for _, r := range rs {
		if !ValidScore(r.Score) {
			return nil, &InvalidRatingError{User: r.UserID, Item: r.ItemID, Score: r.Score}
		}
	}

	vectors := make(map[string]Vector)
	for _, r := range rs {
		vec, ok := vectors[r.UserID]
		if !ok {
			vec = make(Vector)
			vectors[r.UserID] = vec
		}
		vec[r.ItemID] = r.Score
	}

	return newStore(vectors, sortedKeys(vectors)), nil
}

func newStore(vectors map[string]Vector, users []string) *Store {
	distinct := make(map[string]struct{})
	total := 0
	for _, vec := range vectors {
		for item := range vec {
			distinct[item] = struct{}{}
		}
		total += len(vec)
	}

	return &Store{
		id:         uuid.New().String(),
		vectors:    vectors,
		users:      users,
		items:      len(distinct),
		numRatings: total,
	}
}

// ID returns an identifier unique to this Store instance.
// Two loads of the same data yield different IDs.
func (s *Store) ID() string {
	return s.id
}

// RatingsOf returns the rating vector of user and whether the user exists.
func (s *Store) RatingsOf(user string) (Vector, bool) {
	vec, ok := s.vectors[user]
	return vec, ok
}

// AllUsers enumerates every (user, vector) pair in ascending user order.
// The sequence can be ranged over any number of times.
func (s *Store) AllUsers() iter.Seq2[string, Vector] {
	return func(yield func(string, Vector) bool) {
		for _, user := range s.users {
			if !yield(user, s.vectors[user]) {
				return
			}
		}
	}
}

// Users returns a copy of the sorted user IDs.
func (s *Store) Users() []string {
	return slices.Clone(s.users)
}

// Len returns the number of users.
func (s *Store) Len() int {
	return len(s.users)
}

// Items returns the number of distinct rated items.
func (s *Store) Items() int {
	return s.items
}

// NumRatings returns the total number of ratings.
func (s *Store) NumRatings() int {
	return s.numRatings
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
