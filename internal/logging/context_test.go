// Ratingrec - User-Based Collaborative Filtering Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected correlation ID length 8, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id := GenerateRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestCorrelationIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("expected empty correlation ID, got %q", got)
	}

	ctx = ContextWithCorrelationID(ctx, "run-1")
	if got := CorrelationIDFromContext(ctx); got != "run-1" {
		t.Errorf("CorrelationIDFromContext() = %q, want %q", got, "run-1")
	}

	ctx = ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("expected generated correlation ID, got %q", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, "req-1")
	}

	ctx = ContextWithNewRequestID(context.Background())
	if got := RequestIDFromContext(ctx); got == "" {
		t.Error("expected generated request ID")
	}
}

func TestContextWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("scope", "ctx").Logger()

	ctx := ContextWithLogger(context.Background(), logger)
	got := LoggerFromContext(ctx)
	got.Info().Msg("from context")

	if !strings.Contains(buf.String(), `"scope":"ctx"`) {
		t.Errorf("expected stored logger to be used, got: %s", buf.String())
	}
}

func TestCtx(t *testing.T) {
	buf := captureLogs(t, Config{Level: "info"})

	ctx := context.Background()
	ctx = ContextWithCorrelationID(ctx, "corr-123")
	ctx = ContextWithRequestID(ctx, "req-456")

	Ctx(ctx).Info().Msg("context test")

	output := buf.String()
	if !strings.Contains(output, `"correlation_id":"corr-123"`) {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-456"`) {
		t.Errorf("expected request_id in output: %s", output)
	}
}

func TestCtxWith(t *testing.T) {
	buf := captureLogs(t, Config{Level: "info"})

	ctx := ContextWithCorrelationID(context.Background(), "corr-789")

	logger := CtxWith(ctx).Str("user", "alice").Logger()
	logger.Info().Msg("ctxwith test")

	output := buf.String()
	if !strings.Contains(output, "corr-789") {
		t.Errorf("expected correlation_id in output: %s", output)
	}
	if !strings.Contains(output, `"user":"alice"`) {
		t.Errorf("expected user field in output: %s", output)
	}
	if strings.Contains(output, "request_id") {
		t.Errorf("unexpected request_id in output: %s", output)
	}
}
