// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeUnknownUser = "unknown_user"
	OutcomeCancelled   = "cancelled"
	OutcomeError       = "error"
)

var (
	// Similarity Metrics
	SimilarityComputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingrec_similarity_computations_total",
			Help: "Total number of pairwise user similarities computed",
		},
	)

	ZeroOverlapPairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingrec_zero_overlap_pairs_total",
			Help: "Total number of user pairs that share no rated item",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingrec_queries_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // ok, empty, unknown_user, cancelled, error
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ratingrec_query_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	PredictionsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ratingrec_predictions_returned",
			Help:    "Number of predictions returned per query",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
	)

	// Store Metrics
	StoreUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingrec_store_users",
			Help: "Number of users in the loaded rating store",
		},
	)

	StoreItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingrec_store_items",
			Help: "Number of distinct items in the loaded rating store",
		},
	)

	StoreRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingrec_store_ratings",
			Help: "Number of ratings in the loaded rating store",
		},
	)

	StoreLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratingrec_store_load_duration_seconds",
			Help:    "Duration of rating store loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	StoreLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingrec_store_load_errors_total",
			Help: "Total number of failed rating store loads",
		},
		[]string{"source", "error_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingrec_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingrec_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)
)

// RecordQuery records the outcome, latency and result size of one query.
func RecordQuery(outcome string, duration time.Duration, returned int) {
	QueriesTotal.WithLabelValues(outcome).Inc()
	QueryDuration.Observe(duration.Seconds())
	PredictionsReturned.Observe(float64(returned))
}

// RecordSimilarity records one pairwise similarity computation.
func RecordSimilarity(overlap int) {
	SimilarityComputations.Inc()
	if overlap == 0 {
		ZeroOverlapPairs.Inc()
	}
}

// RecordStoreLoad records a store load attempt from source.
// errorType is empty on success.
func RecordStoreLoad(source string, duration time.Duration, errorType string) {
	StoreLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if errorType != "" {
		StoreLoadErrors.WithLabelValues(source, errorType).Inc()
	}
}

// SetStoreSize publishes the dimensions of the loaded store.
func SetStoreSize(users, items, ratings int) {
	StoreUsers.Set(float64(users))
	StoreItems.Set(float64(items))
	StoreRatings.Set(float64(ratings))
}

// RecordCacheLookup records a recommendation cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
