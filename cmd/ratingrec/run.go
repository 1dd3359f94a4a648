// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingrec/internal/config"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/metrics"
	"github.com/tomtom215/ratingrec/internal/ratings"
	"github.com/tomtom215/ratingrec/internal/recommend"
	"github.com/tomtom215/ratingrec/internal/report"
)

// options holds parsed command-line flags.
type options struct {
	configPath  string
	input       string
	output      string
	user        string
	topN        int
	interactive bool
	all         bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("ratingrec", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "config file path")
	fs.StringVar(&opts.input, "input", "", "ratings source path (overrides ratings.path)")
	fs.StringVar(&opts.output, "output", "", "report path (overrides output.path)")
	fs.StringVar(&opts.user, "user", "", "target user; skips the prompt")
	fs.IntVar(&opts.topN, "top", -1, "number of recommendations (default: recommend.top_n)")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for users until EOF")
	fs.BoolVar(&opts.all, "all", false, "recommend for every user and write a batch report")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.topN < -1 {
		return nil, fmt.Errorf("-top must not be negative, got %d", opts.topN)
	}
	if opts.all && (opts.interactive || opts.user != "") {
		return nil, errors.New("-all cannot be combined with -user or -interactive")
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.input != "" {
		cfg.Ratings.Path = opts.input
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// app carries everything a query needs.
type app struct {
	cfg    *config.Config
	store  *ratings.Store
	engine *recommend.Engine
	topN   int
	stdout io.Writer
	logger zerolog.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging.LoggingInit()
	logCfg.Output = stderr
	logging.Init(logCfg)

	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("cli"))
	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := logging.CtxWith(ctx).Logger()

	logger.Info().
		Str("source", cfg.Ratings.Source).
		Str("path", cfg.Ratings.Path).
		Msg("configuration loaded")

	if cfg.Metrics.Enabled {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.Metrics.TextfilePath); werr != nil {
				logger.Error().Err(werr).Str("path", cfg.Metrics.TextfilePath).Msg("write metrics textfile")
				if err == nil {
					err = werr
				}
			}
		}()
	}

	store, err := loadStore(ctx, cfg.Ratings)
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		logger.Warn().Msg("no ratings loaded")
		return nil
	}

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.Logger())
	if err != nil {
		return err
	}

	a := &app{
		cfg:    cfg,
		store:  store,
		engine: engine,
		topN:   cfg.Recommend.TopN,
		stdout: stdout,
		logger: logger,
	}
	if opts.topN >= 0 {
		a.topN = opts.topN
	}

	switch {
	case opts.all:
		return a.batch(ctx)
	case opts.user != "":
		return a.query(ctx, opts.user)
	case opts.interactive:
		return a.interactive(ctx, stdin)
	default:
		user, err := prompt(stdin, stdout)
		if err != nil {
			return err
		}
		return a.query(ctx, user)
	}
}

// loadStore reads ratings from the configured source and records load metrics.
func loadStore(ctx context.Context, rc config.RatingsConfig) (*ratings.Store, error) {
	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("loader"))
	start := time.Now()

	var (
		store *ratings.Store
		err   error
	)
	switch rc.Source {
	case config.SourceDuckDB:
		store, err = ratings.LoadDuckDB(ctx, rc.Path, rc.Query)
	default:
		store, err = ratings.LoadJSON(rc.Path)
	}

	metrics.RecordStoreLoad(rc.Source, time.Since(start), loadErrorType(err))
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	metrics.SetStoreSize(store.Len(), store.Items(), store.NumRatings())
	logging.Ctx(ctx).Info().
		Str("source", rc.Source).
		Int("users", store.Len()).
		Int("items", store.Items()).
		Int("ratings", store.NumRatings()).
		Dur("duration", time.Since(start)).
		Msg("ratings loaded")

	return store, nil
}

// loadErrorType maps a load error to its metrics label; "" for success.
func loadErrorType(err error) string {
	var srcErr *ratings.SourceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ratings.ErrInvalidRating):
		return "invalid_rating"
	case errors.As(err, &srcErr):
		return "source"
	default:
		return "other"
	}
}

// prompt reads one user ID from stdin.
func prompt(stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, "target user: ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read user: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// interactive answers queries line by line until EOF.
func (a *app) interactive(ctx context.Context, stdin io.Reader) error {
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(a.stdout, "target user: ")
		if !scanner.Scan() {
			fmt.Fprintln(a.stdout)
			break
		}
		user := strings.TrimSpace(scanner.Text())
		if user == "" {
			continue
		}
		if err := a.query(ctx, user); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read user: %w", err)
	}
	return nil
}

// query runs one recommendation, prints it and writes the report file.
// An unknown user is reported on stdout and writes no file.
func (a *app) query(ctx context.Context, user string) error {
	ctx = logging.ContextWithNewRequestID(ctx)

	preds, err := a.engine.Recommend(ctx, a.store, user, a.topN)
	if errors.Is(err, recommend.ErrUnknownUser) {
		fmt.Fprintf(a.stdout, "user %q not found\n", user)
		return nil
	}
	if err != nil {
		return fmt.Errorf("recommend for %q: %w", user, err)
	}

	if len(preds) == 0 {
		fmt.Fprintln(a.stdout, report.NoRecommendations)
		return nil
	}

	fmt.Fprintln(a.stdout, "recommendations:")
	if err := report.WriteText(a.stdout, preds); err != nil {
		return err
	}

	if path := a.cfg.Output.Path; path != "" {
		if err := report.WriteFile(path, a.cfg.Output.Format, user, preds); err != nil {
			return err
		}
		logging.Ctx(ctx).Info().
			Str("user", user).
			Str("path", path).
			Int("count", len(preds)).
			Msg("report written")
	}
	return nil
}

// batch recommends for every user and writes one JSON report.
func (a *app) batch(ctx context.Context) error {
	results, err := a.engine.RecommendAll(ctx, a.store, a.topN)
	if err != nil {
		return err
	}

	path := a.cfg.Output.BatchPath
	if err := report.WriteBatchFile(path, results); err != nil {
		return err
	}

	stats := a.engine.Stats()
	a.logger.Info().
		Int("users", len(results)).
		Int64("requests", stats.Requests).
		Int64("cache_hits", stats.CacheHits).
		Str("path", path).
		Msg("batch report written")

	fmt.Fprintf(a.stdout, "wrote recommendations for %d users to %s\n", len(results), path)
	return nil
}
