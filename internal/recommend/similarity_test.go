// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package recommend

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomtom215/ratingrec/internal/ratings"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b ratings.Vector
		want float64
	}{
		{
			name: "identical vectors",
			a:    ratings.Vector{"x": 3, "y": 4},
			b:    ratings.Vector{"x": 3, "y": 4},
			want: 1,
		},
		{
			name: "proportional on common items",
			a:    ratings.Vector{"x": 1, "y": 2, "z": 5},
			b:    ratings.Vector{"x": 2, "y": 4, "w": 1},
			want: 1,
		},
		{
			name: "partial agreement",
			a:    ratings.Vector{"x": 3, "y": 4},
			b:    ratings.Vector{"x": 4, "y": 3},
			want: 0.96,
		},
		{
			name: "no common items",
			a:    ratings.Vector{"x": 5},
			b:    ratings.Vector{"y": 5},
			want: 0,
		},
		{
			name: "zero norm on common items",
			a:    ratings.Vector{"x": 0, "y": 5},
			b:    ratings.Vector{"x": 3, "z": 5},
			want: 0,
		},
		{
			name: "empty vector",
			a:    ratings.Vector{},
			b:    ratings.Vector{"x": 1},
			want: 0,
		},
		{
			name: "both nil",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := ratings.Vector{"x": 1, "y": 5, "z": 2.5}
	b := ratings.Vector{"x": 4, "y": 0.5, "w": 3}

	ab := Similarity(a, b)
	ba := Similarity(b, a)
	if ab != ba {
		t.Errorf("Similarity(a, b) = %v, Similarity(b, a) = %v", ab, ba)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	vectors := []ratings.Vector{
		{"a": 5, "b": 3},
		{"a": 4, "c": 5},
		{"b": 2, "c": 4},
		{"a": 0, "b": 0.5, "c": 5},
		{"d": 1},
		{"a": 5, "b": 5, "c": 5, "d": 5},
	}

	for i, a := range vectors {
		for j, b := range vectors {
			sim := Similarity(a, b)
			if sim < 0 || sim > 1 {
				t.Errorf("Similarity(v%d, v%d) = %v, want within [0, 1]", i, j, sim)
			}
		}
	}
}

func TestSimilarity_RandomVectors(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 43))
	randomVector := func() ratings.Vector {
		v := make(ratings.Vector, 12)
		for len(v) < 12 {
			v[itemName(r.IntN(20))] = float64(r.IntN(51)) / 10
		}
		return v
	}

	for i := 0; i < 2000; i++ {
		a, b := randomVector(), randomVector()

		ab := Similarity(a, b)
		if ba := Similarity(b, a); ab != ba {
			t.Fatalf("pair %d: Similarity(a, b) = %v, Similarity(b, a) = %v", i, ab, ba)
		}
		if again := Similarity(a, b); again != ab {
			t.Fatalf("pair %d: repeated Similarity(a, b) = %v, first %v", i, again, ab)
		}
		if ab < -1 || ab > 1 {
			t.Fatalf("pair %d: Similarity(a, b) = %v, want within [-1, 1]", i, ab)
		}
		if self := Similarity(a, a); self > 1 {
			t.Fatalf("pair %d: Similarity(a, a) = %v, want <= 1", i, self)
		}
	}
}

func TestSimilarity_NegativeBound(t *testing.T) {
	a := ratings.Vector{"x": 1.7, "y": 3.3}
	b := ratings.Vector{"x": -1.7, "y": -3.3}

	if got := Similarity(a, b); got < -1 || math.Abs(got+1) > 1e-12 {
		t.Errorf("Similarity() = %v, want -1", got)
	}
}

func TestCosine_Overlap(t *testing.T) {
	_, overlap := cosine(
		ratings.Vector{"x": 1, "y": 2, "z": 3},
		ratings.Vector{"y": 1, "z": 1, "w": 1},
	)
	if overlap != 2 {
		t.Errorf("overlap = %d, want 2", overlap)
	}
}

func BenchmarkSimilarity(b *testing.B) {
	x := make(ratings.Vector, 200)
	y := make(ratings.Vector, 200)
	for i := 0; i < 200; i++ {
		x[itemName(i)] = float64(i%5) + 1
		y[itemName(i+100)] = float64(i%3) + 1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Similarity(x, y)
	}
}
