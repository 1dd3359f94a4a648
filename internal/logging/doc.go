// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package logging provides centralized zerolog-based structured logging for Ratingrec.
//
// JSON output is the default; console output is available for interactive
// use. A global logger is configured once at startup and components derive
// child loggers from it.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	// Component logger
//	logger := logging.WithComponent("loader")
//	logger.Info().Str("path", path).Msg("ratings loaded")
//
//	// Carry it through a call chain
//	ctx = logging.ContextWithLogger(ctx, logger)
//
//	// Context-aware logging
//	ctx = logging.ContextWithNewRequestID(ctx)
//	logging.Ctx(ctx).Debug().Msg("query started")
//
// # Configuration
//
// Environment Variables (read by the config package):
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Context Propagation
//
// A correlation ID identifies one CLI run; a request ID identifies one
// recommendation query. Both are attached to log lines by Ctx and CtxWith.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Console output is wrapped in a
// zerolog.SyncWriter so parallel workers never interleave partial lines.
package logging
