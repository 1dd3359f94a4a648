// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package ratings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DefaultDuckDBQuery selects ratings from a table named "ratings".
const DefaultDuckDBQuery = `SELECT user_id, item_id, score FROM ratings`

// LoadDuckDB opens the DuckDB database at path, runs query and builds a
// Store from the returned (user_id, item_id, score) rows. An empty path
// opens an in-memory database, which is only useful when the query reads
// external files (e.g. read_csv_auto('ratings.csv')).
func LoadDuckDB(ctx context.Context, path, query string) (*Store, error) {
	if query == "" {
		query = DefaultDuckDBQuery
	}

	source := path
	if source == "" {
		source = ":memory:"
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, &SourceError{Source: source, Err: fmt.Errorf("open database: %w", err)}
	}
	defer func() { _ = conn.Close() }()

	rs, err := QueryRatings(ctx, conn, query)
	if err != nil {
		return nil, &SourceError{Source: source, Err: err}
	}

	return FromRatings(rs)
}

// QueryRatings runs query on db and scans (user_id, item_id, score) rows.
// Numeric ID columns are converted to their decimal string form.
// A NULL in any column is reported as an error.
func QueryRatings(ctx context.Context, db *sql.DB, query string) ([]Rating, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Rating
	for rows.Next() {
		var (
			user  sql.NullString
			item  sql.NullString
			score sql.NullFloat64
		)
		if err := rows.Scan(&user, &item, &score); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if !user.Valid || !item.Valid || !score.Valid {
			return nil, errors.New("scan rating: NULL user_id, item_id or score")
		}
		out = append(out, Rating{UserID: user.String, ItemID: item.String, Score: score.Float64})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return out, nil
}
