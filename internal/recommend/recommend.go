// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/ratingrec/internal/ratings"
)

// options holds per-query settings.
type options struct {
	observer  Observer
	workers   int
	requestID string
}

// Option configures a single Recommend call.
type Option func(*options)

// WithObserver sets the observer receiving similarity and query events.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithWorkers splits the similarity computation across n goroutines.
// Values below 1 mean a single worker.
func WithWorkers(n int) Option {
	return func(opts *options) {
		opts.workers = n
	}
}

// WithRequestID tags emitted QueryEvents with id.
func WithRequestID(id string) Option {
	return func(opts *options) {
		opts.requestID = id
	}
}

// neighbor is a user other than the target together with its ratings.
type neighbor struct {
	user    string
	ratings ratings.Vector
}

// accumulator holds the running sums for one candidate item.
type accumulator struct {
	weighted float64 // sum of sim * rating
	simSum   float64 // sum of sim
}

// Recommend predicts scores for the items target has not rated and returns
// the topN highest, ordered by score descending then item ID ascending.
//
// For every other user v with similarity s = Similarity(target, v) and every
// item i rated by v but not by target, s*r_v(i) is added to the item's
// weighted sum and s to its similarity sum. Items whose similarity sum is
// zero are dropped; the rest score round(weighted/simSum, 2).
//
// A negative topN returns ErrInvalidTopN. An unknown target returns an
// *UnknownUserError. topN == 0 returns an empty slice. Cancelling ctx aborts
// the scan and returns ctx.Err().
func Recommend(ctx context.Context, store *ratings.Store, target string, topN int, opts ...Option) (result []Prediction, err error) {
	o := options{observer: NopObserver{}, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	candidates := 0
	defer func() {
		o.observer.ObserveQuery(QueryEvent{
			RequestID:  o.requestID,
			Target:     target,
			TopN:       topN,
			Candidates: candidates,
			Returned:   len(result),
			Duration:   time.Since(start),
			Err:        err,
		})
	}()

	if topN < 0 {
		return nil, ErrInvalidTopN
	}

	targetVec, ok := store.RatingsOf(target)
	if !ok {
		return nil, &UnknownUserError{User: target}
	}

	if topN == 0 {
		return []Prediction{}, nil
	}

	totals, err := accumulate(ctx, store, target, targetVec, o)
	if err != nil {
		return nil, err
	}
	candidates = len(totals)

	return rank(totals, topN), nil
}

// accumulate scans all other users and returns the per-item sums.
// Similarities are computed in parallel over contiguous chunks of the sorted
// neighbor list; the sums are then built in that same sorted order, so the
// result does not depend on the worker count.
func accumulate(ctx context.Context, store *ratings.Store, target string, targetVec ratings.Vector, o options) (map[string]*accumulator, error) {
	neighbors := make([]neighbor, 0, store.Len())
	for user, vec := range store.AllUsers() {
		if user == target {
			continue
		}
		neighbors = append(neighbors, neighbor{user: user, ratings: vec})
	}

	sims, err := similarities(ctx, targetVec, neighbors, o.workers)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*accumulator)
	for i, nb := range neighbors {
		o.observer.ObserveSimilarity(SimilarityEvent{
			Target:     target,
			Other:      nb.user,
			Similarity: sims[i].value,
			Overlap:    sims[i].overlap,
		})
		contribute(totals, targetVec, nb.ratings, sims[i].value)
	}

	return totals, nil
}

// neighborSim is the similarity of the target to one neighbor.
type neighborSim struct {
	value   float64
	overlap int
}

// similarities computes cosine(targetVec, nb) for every neighbor, split
// across up to workers goroutines. sims[i] belongs to neighbors[i].
func similarities(ctx context.Context, targetVec ratings.Vector, neighbors []neighbor, workers int) ([]neighborSim, error) {
	sims := make([]neighborSim, len(neighbors))
	if len(neighbors) == 0 {
		return sims, ctx.Err()
	}

	numWorkers := max(1, min(workers, len(neighbors)))
	chunkSize := (len(neighbors) + numWorkers - 1) / numWorkers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(neighbors); lo += chunkSize {
		hi := min(lo+chunkSize, len(neighbors))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				sims[i].value, sims[i].overlap = cosine(targetVec, neighbors[i].ratings)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sims, nil
}

// contribute adds one neighbor's weighted ratings for the items the target
// has not rated.
func contribute(totals map[string]*accumulator, targetVec, nbRatings ratings.Vector, sim float64) {
	for item, score := range nbRatings {
		if _, rated := targetVec[item]; rated {
			continue
		}
		a, ok := totals[item]
		if !ok {
			a = &accumulator{}
			totals[item] = a
		}
		a.weighted += sim * score
		a.simSum += sim
	}
}

// rank turns the sums into rounded predictions and keeps the topN best.
func rank(totals map[string]*accumulator, topN int) []Prediction {
	preds := make([]Prediction, 0, len(totals))
	for item, a := range totals {
		if a.simSum == 0 {
			continue
		}
		preds = append(preds, Prediction{
			ItemID: item,
			Score:  round2(a.weighted / a.simSum),
		})
	}

	slices.SortFunc(preds, func(a, b Prediction) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID, b.ItemID)
	})

	if len(preds) > topN {
		preds = preds[:topN]
	}
	return preds
}

// round2 rounds x to two decimals using the exact binary value of x, so
// 2.675 (stored just below the half) gives 2.67. Exact halves go to even.
func round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
