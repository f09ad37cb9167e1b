package mock

import (
	"context"

	"github.com/synthara-ai/synthara"
)

var _ synthara.StructuredExtractor = (*StructuredExtractor)(nil)

// StructuredExtractor is a mock implementation of synthara.StructuredExtractor.
type StructuredExtractor struct {
	HealthFn            func(ctx context.Context) bool
	ExtractStructuredFn func(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.ExtractionResult
}

func (e *StructuredExtractor) Health(ctx context.Context) bool {
	return e.HealthFn(ctx)
}

func (e *StructuredExtractor) ExtractStructured(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.ExtractionResult {
	return e.ExtractStructuredFn(ctx, urls, opts)
}

var _ synthara.BulkExtractor = (*BulkExtractor)(nil)

// BulkExtractor is a mock implementation of synthara.BulkExtractor.
type BulkExtractor struct {
	ExtractStructuredBulkFn func(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.BatchOutcome
}

func (e *BulkExtractor) ExtractStructuredBulk(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.BatchOutcome {
	return e.ExtractStructuredBulkFn(ctx, urls, opts)
}
