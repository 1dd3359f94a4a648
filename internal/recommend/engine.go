// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/ratingrec/internal/cache"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/metrics"
	"github.com/tomtom215/ratingrec/internal/ratings"
)

// Engine runs recommendation queries with configured limits, caching,
// logging and metrics. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	observer Observer

	// nil when caching is disabled
	cache *cache.LRU[[]Prediction]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats holds engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
	CacheSize   int   `json:"cache_size"`
}

// NewEngine creates an engine. Events go to a metrics observer, to a log
// observer when cfg.LogSimilarities is set, and to any extra observers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, observers ...Observer) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	all := []Observer{MetricsObserver{}}
	if cfg.LogSimilarities {
		all = append(all, NewLogObserver(e.logger))
	}
	all = append(all, observers...)
	e.observer = Observers(all...)

	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[[]Prediction](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend returns up to topN predictions for user. topN above the
// configured maximum is clamped. Cached results skip the neighbor scan: they
// produce a QueryEvent with Cached set and no similarity events.
func (e *Engine) Recommend(ctx context.Context, store *ratings.Store, user string, topN int) ([]Prediction, error) {
	start := time.Now()
	e.requestCount.Add(1)

	topN = e.clampTopN(topN)

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	logger := e.createRequestLogger(requestID, user, topN)
	logger.Debug().Msg("processing recommendation request")

	key := cacheKey(store, user, topN)
	if preds, ok := e.tryGetCached(key, logger); ok {
		e.observer.ObserveQuery(QueryEvent{
			RequestID: requestID,
			Target:    user,
			TopN:      topN,
			Returned:  len(preds),
			Duration:  time.Since(start),
			Cached:    true,
		})
		return preds, nil
	}

	if e.config.Limits.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Limits.QueryTimeout)
		defer cancel()
	}

	preds, err := Recommend(ctx, store, user, topN,
		WithObserver(e.observer),
		WithWorkers(e.config.workers()),
		WithRequestID(requestID),
	)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	e.cacheResult(key, preds)

	logger.Debug().
		Int("returned", len(preds)).
		Msg("recommendation complete")

	return preds, nil
}

// RecommendDefault calls Recommend with the configured default result size.
func (e *Engine) RecommendDefault(ctx context.Context, store *ratings.Store, user string) ([]Prediction, error) {
	return e.Recommend(ctx, store, user, e.config.Limits.DefaultTopN)
}

// RecommendAll runs a query for every user in store and returns the results
// keyed by user. The first failing query cancels the rest.
func (e *Engine) RecommendAll(ctx context.Context, store *ratings.Store, topN int) (map[string][]Prediction, error) {
	users := store.Users()
	results := make(map[string][]Prediction, len(users))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Limits.MaxConcurrentQueries)

	for _, user := range users {
		g.Go(func() error {
			preds, err := e.Recommend(gctx, store, user, topN)
			if err != nil {
				return fmt.Errorf("recommend for %q: %w", user, err)
			}
			mu.Lock()
			results[user] = preds
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info().
		Int("users", len(users)).
		Int("top_n", topN).
		Msg("batch recommendation complete")

	return results, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
	if e.cache != nil {
		s.CacheHits, s.CacheMisses, s.CacheSize = e.cache.Stats()
	}
	return s
}

// ClearCache drops all cached results.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

func (e *Engine) clampTopN(topN int) int {
	if maxN := e.config.Limits.MaxTopN; maxN > 0 && topN > maxN {
		return maxN
	}
	return topN
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // zerolog.Logger returned by value is the standard pattern
func (e *Engine) createRequestLogger(requestID, user string, topN int) zerolog.Logger {
	return e.logger.With().
		Str("request_id", requestID).
		Str("user", user).
		Int("top_n", topN).
		Logger()
}

// tryGetCached returns a copy of a cached result.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) tryGetCached(key string, logger zerolog.Logger) ([]Prediction, bool) {
	if e.cache == nil {
		return nil, false
	}

	preds, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return nil, false
	}

	logger.Debug().Msg("cache hit")
	return slices.Clone(preds), true
}

func (e *Engine) cacheResult(key string, preds []Prediction) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, slices.Clone(preds))
}

// cacheKey ties a result to the store snapshot it was computed from.
func cacheKey(store *ratings.Store, user string, topN int) string {
	return fmt.Sprintf("rec:%s:%d:%s", store.ID(), topN, user)
}
