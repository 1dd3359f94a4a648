// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingrec/internal/metrics"
)

// LogObserver writes events to a zerolog logger. Each similarity is logged at
// info level, query summaries at debug level.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates a LogObserver.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// ObserveSimilarity implements Observer.
func (o *LogObserver) ObserveSimilarity(ev SimilarityEvent) {
	o.logger.Info().
		Str("target", ev.Target).
		Str("other", ev.Other).
		Float64("similarity", ev.Similarity).
		Int("overlap", ev.Overlap).
		Msgf("similarity(%s, %s) = %.4f", ev.Target, ev.Other, ev.Similarity)
}

// ObserveQuery implements Observer.
func (o *LogObserver) ObserveQuery(ev QueryEvent) {
	var event *zerolog.Event
	if ev.Err != nil && !errors.Is(ev.Err, ErrUnknownUser) {
		event = o.logger.Warn().Err(ev.Err)
	} else {
		event = o.logger.Debug()
		if ev.Err != nil {
			event = event.Err(ev.Err)
		}
	}

	event.
		Str("request_id", ev.RequestID).
		Str("target", ev.Target).
		Int("top_n", ev.TopN).
		Int("candidates", ev.Candidates).
		Int("returned", ev.Returned).
		Dur("duration", ev.Duration).
		Bool("cached", ev.Cached).
		Msg("query finished")
}

// MetricsObserver records events as Prometheus metrics.
type MetricsObserver struct{}

// ObserveSimilarity implements Observer.
func (MetricsObserver) ObserveSimilarity(ev SimilarityEvent) {
	metrics.RecordSimilarity(ev.Overlap)
}

// ObserveQuery implements Observer.
func (MetricsObserver) ObserveQuery(ev QueryEvent) {
	metrics.RecordQuery(queryOutcome(ev), ev.Duration, ev.Returned)
}

// queryOutcome maps a query result to its metrics label.
func queryOutcome(ev QueryEvent) string {
	switch {
	case ev.Err == nil && ev.Returned == 0:
		return metrics.OutcomeEmpty
	case ev.Err == nil:
		return metrics.OutcomeOK
	case errors.Is(ev.Err, ErrUnknownUser):
		return metrics.OutcomeUnknownUser
	case errors.Is(ev.Err, context.Canceled), errors.Is(ev.Err, context.DeadlineExceeded):
		return metrics.OutcomeCancelled
	default:
		return metrics.OutcomeError
	}
}
