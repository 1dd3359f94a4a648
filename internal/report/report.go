// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package report renders recommendation results as text or JSON.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingrec/internal/recommend"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NoRecommendations is printed when a query returns nothing.
const NoRecommendations = "no recommendations"

// UserReport is the JSON shape of a single-user report.
type UserReport struct {
	User            string                 `json:"user"`
	Recommendations []recommend.Prediction `json:"recommendations"`
}

// FormatScore renders a score in its shortest form with at least one
// decimal digit: 4.5, 3.27, 5.0.
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteText writes one "item: score" line per prediction.
func WriteText(w io.Writer, preds []recommend.Prediction) error {
	bw := bufio.NewWriter(w)
	for _, p := range preds {
		if _, err := fmt.Fprintf(bw, "%s: %s\n", p.ItemID, FormatScore(p.Score)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON writes a single-user report as indented JSON.
func WriteJSON(w io.Writer, user string, preds []recommend.Prediction) error {
	if preds == nil {
		preds = []recommend.Prediction{}
	}
	return encode(w, UserReport{User: user, Recommendations: preds})
}

// WriteBatchJSON writes results keyed by user. Keys are emitted in sorted order.
func WriteBatchJSON(w io.Writer, results map[string][]recommend.Prediction) error {
	out := make(map[string][]recommend.Prediction, len(results))
	for user, preds := range results {
		if preds == nil {
			preds = []recommend.Prediction{}
		}
		out[user] = preds
	}
	return encode(w, out)
}

// Write renders a single-user report in the given format.
func Write(w io.Writer, format, user string, preds []recommend.Prediction) error {
	switch format {
	case FormatText, "":
		return WriteText(w, preds)
	case FormatJSON:
		return WriteJSON(w, user, preds)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile writes a single-user report to path, replacing any existing file.
func WriteFile(path, format, user string, preds []recommend.Prediction) error {
	return writeAtomic(path, func(w io.Writer) error {
		return Write(w, format, user, preds)
	})
}

// WriteBatchFile writes a batch JSON report to path.
func WriteBatchFile(path string, results map[string][]recommend.Prediction) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteBatchJSON(w, results)
	})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// writeAtomic writes to a temporary file next to path and renames it into
// place, so readers never observe a partial report.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()        //nolint:errcheck // Best effort cleanup on error
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("chmod report file: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()        //nolint:errcheck // Best effort cleanup on error
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("close report %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("rename report %s: %w", path, err)
	}
	return nil
}
