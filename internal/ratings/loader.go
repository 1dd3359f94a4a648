// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package ratings

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// LoadJSON reads a nested {"user": {"item": score}} document from path
// and builds a Store from it. A null score is reported as an
// *InvalidRatingError; a null document or user vector as a *SourceError.
func LoadJSON(path string) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	raw, err := decodeJSON(f, path)
	if err != nil {
		return nil, err
	}
	return Load(raw)
}

// ReadJSON is LoadJSON for an already opened reader.
func ReadJSON(r io.Reader) (*Store, error) {
	raw, err := decodeJSON(r, "reader")
	if err != nil {
		return nil, err
	}
	return Load(raw)
}

// decodeJSON parses the document. Null scores become NaN so that Load
// rejects them in its usual sorted order.
func decodeJSON(r io.Reader, source string) (map[string]map[string]float64, error) {
	var doc map[string]map[string]*float64
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &SourceError{Source: source, Err: fmt.Errorf("decode json: %w", err)}
	}
	if doc == nil {
		return nil, &SourceError{Source: source, Err: errors.New("document is null")}
	}

	raw := make(map[string]map[string]float64, len(doc))
	for _, user := range sortedKeys(doc) {
		scores := doc[user]
		if scores == nil {
			return nil, &SourceError{Source: source, Err: fmt.Errorf("user %q: rating vector is null", user)}
		}
		vec := make(map[string]float64, len(scores))
		for item, score := range scores {
			if score == nil {
				vec[item] = math.NaN()
				continue
			}
			vec[item] = *score
		}
		raw[user] = vec
	}
	return raw, nil
}
