// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/tomtom215/ratingrec/internal/ratings"
)

func itemName(i int) string {
	return fmt.Sprintf("item%03d", i)
}

func mustStore(t testing.TB, raw map[string]map[string]float64) *ratings.Store {
	t.Helper()
	store, err := ratings.Load(raw)
	if err != nil {
		t.Fatalf("ratings.Load() error = %v", err)
	}
	return store
}

// sampleStore is the three-user store used across tests.
func sampleStore(t testing.TB) *ratings.Store {
	return mustStore(t, map[string]map[string]float64{
		"u1": {"a": 5, "b": 3},
		"u2": {"a": 4, "c": 5},
		"u3": {"b": 2, "c": 4},
	})
}

// largeStore builds a store where every overlapping neighbor has similarity
// exactly 1, so expected scores are plain averages.
func largeStore(t testing.TB) *ratings.Store {
	raw := map[string]map[string]float64{
		"target": {"x": 1},
	}
	for k := 0; k < 40; k++ {
		raw[fmt.Sprintf("n%02d", k)] = map[string]float64{
			"x":              float64(k%5 + 1),
			itemName(k % 7):  float64(k%5 + 1),
			itemName(k % 11): float64(k%3 + 2),
		}
		raw[fmt.Sprintf("z%02d", k)] = map[string]float64{
			itemName(k % 13): 3,
		}
	}
	return mustStore(t, raw)
}

// recordingObserver collects events for assertions.
type recordingObserver struct {
	mu           sync.Mutex
	similarities []SimilarityEvent
	queries      []QueryEvent
}

func (r *recordingObserver) ObserveSimilarity(ev SimilarityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.similarities = append(r.similarities, ev)
}

func (r *recordingObserver) ObserveQuery(ev QueryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, ev)
}

func TestRecommend_SharedNeighbors(t *testing.T) {
	store := sampleStore(t)

	got, err := Recommend(context.Background(), store, "u1", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := []Prediction{{ItemID: "c", Score: 4.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}

	for _, p := range got {
		if p.ItemID == "a" || p.ItemID == "b" {
			t.Errorf("Recommend() returned already rated item %q", p.ItemID)
		}
	}
}

func TestRecommend_UnknownUser(t *testing.T) {
	store := sampleStore(t)

	got, err := Recommend(context.Background(), store, "ghost", 3)
	if len(got) != 0 {
		t.Errorf("Recommend() = %v, want empty", got)
	}

	var unknown *UnknownUserError
	if !errors.As(err, &unknown) {
		t.Fatalf("Recommend() error = %v, want *UnknownUserError", err)
	}
	if unknown.User != "ghost" {
		t.Errorf("UnknownUserError.User = %q, want %q", unknown.User, "ghost")
	}
	if !errors.Is(err, ErrUnknownUser) {
		t.Error("errors.Is(err, ErrUnknownUser) = false, want true")
	}
}

func TestRecommend_NoOverlap(t *testing.T) {
	store := mustStore(t, map[string]map[string]float64{
		"loner": {"z": 4},
		"u1":    {"a": 5, "b": 3},
		"u2":    {"a": 4, "c": 5},
	})

	obs := &recordingObserver{}
	got, err := Recommend(context.Background(), store, "loner", 3, WithObserver(obs))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Recommend() = %#v, want empty non-nil slice", got)
	}

	for _, ev := range obs.similarities {
		if ev.Similarity != 0 {
			t.Errorf("similarity(%s, %s) = %v, want 0", ev.Target, ev.Other, ev.Similarity)
		}
	}
}

func TestRecommend_TopN(t *testing.T) {
	store := largeStore(t)

	t.Run("zero returns empty", func(t *testing.T) {
		got, err := Recommend(context.Background(), store, "target", 0)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Recommend() = %#v, want empty non-nil slice", got)
		}
	})

	t.Run("negative is rejected", func(t *testing.T) {
		got, err := Recommend(context.Background(), store, "target", -1)
		if !errors.Is(err, ErrInvalidTopN) {
			t.Errorf("Recommend() error = %v, want ErrInvalidTopN", err)
		}
		if got != nil {
			t.Errorf("Recommend() = %v, want nil", got)
		}
	})

	t.Run("negative is checked before user", func(t *testing.T) {
		_, err := Recommend(context.Background(), store, "ghost", -1)
		if !errors.Is(err, ErrInvalidTopN) {
			t.Errorf("Recommend() error = %v, want ErrInvalidTopN", err)
		}
	})

	t.Run("truncates", func(t *testing.T) {
		for _, n := range []int{1, 2, 5} {
			got, err := Recommend(context.Background(), store, "target", n)
			if err != nil {
				t.Fatalf("Recommend(%d) error = %v", n, err)
			}
			if len(got) != n {
				t.Errorf("Recommend(%d) returned %d predictions", n, len(got))
			}
		}
	})

	t.Run("larger than candidates", func(t *testing.T) {
		got, err := Recommend(context.Background(), store, "target", 1000)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		// item000..item010 receive positive similarity; item011 and item012
		// are only rated by non-overlapping users.
		if len(got) != 11 {
			t.Errorf("Recommend() returned %d predictions, want 11", len(got))
		}
	})
}

func TestRecommend_Ordering(t *testing.T) {
	store := mustStore(t, map[string]map[string]float64{
		"t":  {"x": 1},
		"o1": {"x": 1, "q": 4, "p": 4},
		"o2": {"x": 2, "r": 5},
		"o3": {"x": 3, "s": 1},
	})

	got, err := Recommend(context.Background(), store, "t", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := []Prediction{
		{ItemID: "r", Score: 5},
		{ItemID: "p", Score: 4},
		{ItemID: "q", Score: 4},
		{ItemID: "s", Score: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestRecommend_Rounding(t *testing.T) {
	store := mustStore(t, map[string]map[string]float64{
		"t":  {"x": 2},
		"o1": {"x": 2, "i": 1},
		"o2": {"x": 4, "i": 1},
		"o3": {"x": 1, "i": 2},
	})

	got, err := Recommend(context.Background(), store, "t", 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []Prediction{{ItemID: "i", Score: 1.33}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestRecommend_WeightedAverage(t *testing.T) {
	// sim(t, near) = 1, sim(t, far) = 0.96
	store := mustStore(t, map[string]map[string]float64{
		"t":    {"x": 3, "y": 4},
		"near": {"x": 3, "y": 4, "i": 5},
		"far":  {"x": 4, "y": 3, "i": 1},
	})

	got, err := Recommend(context.Background(), store, "t", 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// (1*5 + 0.96*1) / 1.96 = 3.0408...
	want := []Prediction{{ItemID: "i", Score: 3.04}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestRecommend_EmptyTargetVector(t *testing.T) {
	store := mustStore(t, map[string]map[string]float64{
		"empty": {},
		"u1":    {"a": 5},
	})

	got, err := Recommend(context.Background(), store, "empty", 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recommend() = %v, want empty", got)
	}
}

func TestRecommend_SingleUser(t *testing.T) {
	store := mustStore(t, map[string]map[string]float64{
		"solo": {"a": 5},
	})

	got, err := Recommend(context.Background(), store, "solo", 3, WithWorkers(4))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recommend() = %v, want empty", got)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	store := largeStore(t)

	first, err := Recommend(context.Background(), store, "target", 5, WithWorkers(4))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		got, err := Recommend(context.Background(), store, "target", 5, WithWorkers(4))
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Recommend() = %v, want %v", i, got, first)
		}
	}
}

func TestRecommend_WorkersAgree(t *testing.T) {
	store := largeStore(t)

	sequential, err := Recommend(context.Background(), store, "target", 20, WithWorkers(1))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for _, workers := range []int{0, 2, 3, 4, 16, 1000} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := Recommend(context.Background(), store, "target", 20, WithWorkers(workers))
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if !reflect.DeepEqual(got, sequential) {
				t.Errorf("Recommend() = %v, want %v", got, sequential)
			}
		})
	}
}

// randomStore builds users with scores on a 0.1 grid, so similarities are
// rarely exact and summation order shows up in the low bits.
func randomStore(t testing.TB, users, items, perUser int, seed uint64) *ratings.Store {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed+1))
	raw := make(map[string]map[string]float64, users)
	for u := 0; u < users; u++ {
		vec := make(map[string]float64, perUser)
		for len(vec) < perUser {
			vec[itemName(r.IntN(items))] = float64(r.IntN(51)) / 10
		}
		raw[fmt.Sprintf("u%03d", u)] = vec
	}
	return mustStore(t, raw)
}

func TestAccumulate_WorkerCountIndependent(t *testing.T) {
	store := randomStore(t, 64, 40, 12, 7)
	ctx := context.Background()

	for _, target := range []string{"u000", "u017", "u063"} {
		targetVec, _ := store.RatingsOf(target)

		want, err := accumulate(ctx, store, target, targetVec, options{observer: NopObserver{}, workers: 1})
		if err != nil {
			t.Fatalf("accumulate() error = %v", err)
		}

		for _, workers := range []int{2, 3, 8, 64} {
			t.Run(fmt.Sprintf("%s/workers=%d", target, workers), func(t *testing.T) {
				got, err := accumulate(ctx, store, target, targetVec, options{observer: NopObserver{}, workers: workers})
				if err != nil {
					t.Fatalf("accumulate() error = %v", err)
				}
				if len(got) != len(want) {
					t.Fatalf("accumulate() returned %d items, want %d", len(got), len(want))
				}
				for item, w := range want {
					g, ok := got[item]
					if !ok {
						t.Errorf("item %s missing", item)
						continue
					}
					if g.weighted != w.weighted || g.simSum != w.simSum {
						t.Errorf("item %s = (%v, %v), want (%v, %v)", item, g.weighted, g.simSum, w.weighted, w.simSum)
					}
				}
			})
		}
	}
}

func TestRecommend_SimilarityEventsInUserOrder(t *testing.T) {
	store := randomStore(t, 20, 30, 8, 3)
	obs := &recordingObserver{}

	if _, err := Recommend(context.Background(), store, "u005", 3, WithWorkers(4), WithObserver(obs)); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var others []string
	for _, ev := range obs.similarities {
		others = append(others, ev.Other)
	}
	want := slices.DeleteFunc(store.Users(), func(u string) bool { return u == "u005" })
	if !reflect.DeepEqual(others, want) {
		t.Errorf("similarity event order = %v, want %v", others, want)
	}
}

func TestRecommend_Cancelled(t *testing.T) {
	store := largeStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	obs := &recordingObserver{}
	got, err := Recommend(ctx, store, "target", 3, WithWorkers(4), WithObserver(obs))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
	if got != nil {
		t.Errorf("Recommend() = %v, want nil", got)
	}

	if len(obs.queries) != 1 || !errors.Is(obs.queries[0].Err, context.Canceled) {
		t.Errorf("query events = %+v, want one cancelled event", obs.queries)
	}
}

func TestRecommend_Observer(t *testing.T) {
	store := sampleStore(t)
	obs := &recordingObserver{}

	got, err := Recommend(context.Background(), store, "u1", 3,
		WithObserver(obs), WithWorkers(2), WithRequestID("req-1"))
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(obs.similarities) != store.Len()-1 {
		t.Errorf("got %d similarity events, want %d", len(obs.similarities), store.Len()-1)
	}
	for _, ev := range obs.similarities {
		if ev.Target != "u1" || ev.Other == "u1" {
			t.Errorf("unexpected similarity event %+v", ev)
		}
		if ev.Overlap != 1 || ev.Similarity != 1 {
			t.Errorf("similarity event %+v, want overlap 1 and similarity 1", ev)
		}
	}

	if len(obs.queries) != 1 {
		t.Fatalf("got %d query events, want 1", len(obs.queries))
	}
	q := obs.queries[0]
	if q.RequestID != "req-1" || q.Target != "u1" || q.TopN != 3 {
		t.Errorf("query event = %+v", q)
	}
	if q.Returned != len(got) || q.Candidates != 1 || q.Err != nil {
		t.Errorf("query event = %+v, want returned %d, candidates 1, no error", q, len(got))
	}
}

func TestRecommend_StoreUnchanged(t *testing.T) {
	store := sampleStore(t)
	before, _ := store.RatingsOf("u1")
	snapshot := make(ratings.Vector, len(before))
	for k, v := range before {
		snapshot[k] = v
	}

	if _, err := Recommend(context.Background(), store, "u1", 3); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	after, _ := store.RatingsOf("u1")
	if !reflect.DeepEqual(map[string]float64(after), map[string]float64(snapshot)) {
		t.Errorf("target ratings changed: %v -> %v", snapshot, after)
	}
}

func TestObservers(t *testing.T) {
	if _, ok := Observers().(NopObserver); !ok {
		t.Error("Observers() should return NopObserver")
	}
	if _, ok := Observers(nil, nil).(NopObserver); !ok {
		t.Error("Observers(nil, nil) should return NopObserver")
	}

	single := &recordingObserver{}
	if Observers(nil, single) != Observer(single) {
		t.Error("Observers with one observer should return it unchanged")
	}

	a, b := &recordingObserver{}, &recordingObserver{}
	combined := Observers(a, b)
	combined.ObserveSimilarity(SimilarityEvent{Target: "x", Other: "y"})
	combined.ObserveQuery(QueryEvent{Target: "x"})

	for i, r := range []*recordingObserver{a, b} {
		if len(r.similarities) != 1 || len(r.queries) != 1 {
			t.Errorf("observer %d got %d/%d events, want 1/1", i, len(r.similarities), len(r.queries))
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{4.5, 4.5},
		{1.0 / 3.0, 0.33},
		{2.0 / 3.0, 0.67},
		{4.999, 5},
		{1.115, 1.11},
		{2.675, 2.67},
		{0.125, 0.12},
		{0.375, 0.38},
		{0, 0},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkRecommend(b *testing.B) {
	raw := make(map[string]map[string]float64, 500)
	for u := 0; u < 500; u++ {
		vec := make(map[string]float64, 30)
		for j := 0; j < 30; j++ {
			vec[itemName((u*7+j*13)%400)] = float64((u+j)%5) + 1
		}
		raw[fmt.Sprintf("user%03d", u)] = vec
	}
	store := mustStore(b, raw)

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Recommend(context.Background(), store, "user000", 10, WithWorkers(workers)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
