// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"time"
)

// Prediction is a predicted score for an item the target user has not rated.
type Prediction struct {
	// ItemID is the recommended item.
	ItemID string `json:"item_id"`

	// Score is the similarity-weighted average rating, rounded to 2 decimals.
	Score float64 `json:"score"`
}

// SimilarityEvent describes one pairwise similarity computed during a query.
type SimilarityEvent struct {
	// Target is the user recommendations are computed for.
	Target string

	// Other is the user compared against Target.
	Other string

	// Similarity is the cosine similarity over co-rated items.
	Similarity float64

	// Overlap is the number of co-rated items.
	Overlap int
}

// QueryEvent summarizes a finished query.
type QueryEvent struct {
	// RequestID correlates the query with log lines, if one was set.
	RequestID string

	// Target is the requested user.
	Target string

	// TopN is the requested result size.
	TopN int

	// Candidates is the number of unrated items that received any contribution.
	Candidates int

	// Returned is the number of predictions returned.
	Returned int

	// Duration is the wall time of the query.
	Duration time.Duration

	// Err is the query error, nil on success.
	Err error

	// Cached reports that the result came from the engine cache.
	Cached bool
}

// Observer receives diagnostic events from a query.
// Within one query, events arrive from a single goroutine in sorted user
// order. Concurrent queries (Engine.RecommendAll) share the observer, so
// implementations must be safe for concurrent use.
type Observer interface {
	ObserveSimilarity(SimilarityEvent)
	ObserveQuery(QueryEvent)
}

// NopObserver discards all events.
type NopObserver struct{}

// ObserveSimilarity implements Observer.
func (NopObserver) ObserveSimilarity(SimilarityEvent) {}

// ObserveQuery implements Observer.
func (NopObserver) ObserveQuery(QueryEvent) {}

// multiObserver fans events out to several observers in order.
type multiObserver []Observer

func (m multiObserver) ObserveSimilarity(ev SimilarityEvent) {
	for _, o := range m {
		o.ObserveSimilarity(ev)
	}
}

func (m multiObserver) ObserveQuery(ev QueryEvent) {
	for _, o := range m {
		o.ObserveQuery(ev)
	}
}

// Observers combines observers into one. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}

	switch len(out) {
	case 0:
		return NopObserver{}
	case 1:
		return out[0]
	default:
		return out
	}
}
