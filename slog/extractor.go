// Package slog provides logging decorators for synthara services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/synthara-ai/synthara"
)

// Ensure LoggingExtractor implements synthara.StructuredExtractor.
var _ synthara.StructuredExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a StructuredExtractor with per-call logging.
// Wrapping the extractor rather than the bulk orchestrator gives one
// log line per batch, so failed batches remain attributable to their
// URLs even though the aggregate outcome swallows them.
type LoggingExtractor struct {
	next   synthara.StructuredExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next synthara.StructuredExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Health delegates to the wrapped extractor and logs the verdict.
func (e *LoggingExtractor) Health(ctx context.Context) bool {
	begin := time.Now()
	ok := e.next.Health(ctx)
	e.logger.Info("extraction backend health",
		"healthy", ok,
		"duration", time.Since(begin),
	)
	return ok
}

// ExtractStructured delegates to the wrapped extractor and logs the
// batch outcome.
func (e *LoggingExtractor) ExtractStructured(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.ExtractionResult {
	begin := time.Now()
	res := e.next.ExtractStructured(ctx, urls, opts)

	if res.Success {
		e.logger.Info("extraction batch",
			"urls", len(urls),
			"results", len(res.Results),
			"duration", time.Since(begin),
		)
	} else {
		e.logger.Warn("extraction batch failed",
			"urls", urls,
			"error", res.Error,
			"duration", time.Since(begin),
		)
	}
	return res
}
