package crawl4ai_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synthara-ai/synthara"
	"github.com/synthara-ai/synthara/crawl4ai"
	"github.com/synthara-ai/synthara/mock"
)

func testOpts() synthara.ExtractionOptions {
	return synthara.ExtractionOptions{Query: "products with prices", TargetRows: 25}
}

func urlsN(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/page%d", i)
	}
	return urls
}

func resultFor(url string, rows int) synthara.StructuredResult {
	rs := make([]synthara.Row, rows)
	for i := range rs {
		rs[i] = synthara.Row{"url": url, "n": i}
	}
	return synthara.StructuredResult{URL: url, Rows: rs}
}

func TestService_ExtractStructuredBulk(t *testing.T) {
	t.Parallel()

	t.Run("aborts before any batch when backend is unhealthy", func(t *testing.T) {
		t.Parallel()

		var extractCalls int
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return false },
			ExtractStructuredFn: func(context.Context, []string, synthara.ExtractionOptions) synthara.ExtractionResult {
				extractCalls++
				return synthara.ExtractionResult{}
			},
		})

		outcome := svc.ExtractStructuredBulk(context.Background(), urlsN(12), testOpts())

		assert.False(t, outcome.Success)
		assert.Empty(t, outcome.Results)
		assert.Equal(t, "Crawl4AI service unavailable", outcome.Error)
		assert.Equal(t, 0, extractCalls)
	})

	t.Run("partitions into exact contiguous batches", func(t *testing.T) {
		t.Parallel()

		var batches [][]string
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(_ context.Context, urls []string, _ synthara.ExtractionOptions) synthara.ExtractionResult {
				batches = append(batches, urls)
				return synthara.ExtractionResult{
					Success: true,
					Results: []synthara.StructuredResult{resultFor(urls[0], 1)},
				}
			},
		})

		urls := urlsN(12)
		outcome := svc.ExtractStructuredBulk(context.Background(), urls, testOpts())

		require.True(t, outcome.Success)
		require.Len(t, batches, 3)
		assert.Equal(t, urls[0:5], batches[0])
		assert.Equal(t, urls[5:10], batches[1])
		assert.Equal(t, urls[10:12], batches[2])
	})

	t.Run("appends results in batch submission order", func(t *testing.T) {
		t.Parallel()

		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(_ context.Context, urls []string, _ synthara.ExtractionOptions) synthara.ExtractionResult {
				results := make([]synthara.StructuredResult, 0, len(urls))
				for _, u := range urls {
					results = append(results, resultFor(u, 1))
				}
				return synthara.ExtractionResult{Success: true, Results: results}
			},
		})

		urls := urlsN(12)
		outcome := svc.ExtractStructuredBulk(context.Background(), urls, testOpts())

		require.True(t, outcome.Success)
		require.Len(t, outcome.Results, 12)
		for i, res := range outcome.Results {
			assert.Equal(t, urls[i], res.URL)
		}
	})

	t.Run("one failing batch does not abort subsequent batches", func(t *testing.T) {
		t.Parallel()

		var call int
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(_ context.Context, urls []string, _ synthara.ExtractionOptions) synthara.ExtractionResult {
				call++
				if call == 1 {
					return synthara.ExtractionResult{Success: false, Error: "HTTP 500: Internal Server Error"}
				}
				return synthara.ExtractionResult{
					Success: true,
					Results: []synthara.StructuredResult{resultFor(urls[0], 3)},
				}
			},
		})

		outcome := svc.ExtractStructuredBulk(context.Background(), urlsN(10), testOpts())

		require.True(t, outcome.Success)
		require.Len(t, outcome.Results, 1)
		assert.Len(t, outcome.Results[0].Rows, 3)
		assert.Empty(t, outcome.Error)
		assert.Equal(t, 2, call)
	})

	t.Run("all batches failing surfaces the last error", func(t *testing.T) {
		t.Parallel()

		var call int
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(context.Context, []string, synthara.ExtractionOptions) synthara.ExtractionResult {
				call++
				return synthara.ExtractionResult{Success: false, Error: fmt.Sprintf("batch %d failed", call)}
			},
		})

		outcome := svc.ExtractStructuredBulk(context.Background(), urlsN(12), testOpts())

		assert.False(t, outcome.Success)
		assert.Empty(t, outcome.Results)
		assert.Equal(t, "batch 3 failed", outcome.Error)
	})

	t.Run("falls back to generic message when no batch reported an error", func(t *testing.T) {
		t.Parallel()

		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(context.Context, []string, synthara.ExtractionOptions) synthara.ExtractionResult {
				return synthara.ExtractionResult{Success: false}
			},
		})

		outcome := svc.ExtractStructuredBulk(context.Background(), urlsN(3), testOpts())

		assert.False(t, outcome.Success)
		assert.Equal(t, "no rows extracted", outcome.Error)
	})

	t.Run("empty url set yields a failed outcome without extract calls", func(t *testing.T) {
		t.Parallel()

		var extractCalls int
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(context.Context, []string, synthara.ExtractionOptions) synthara.ExtractionResult {
				extractCalls++
				return synthara.ExtractionResult{}
			},
		})

		outcome := svc.ExtractStructuredBulk(context.Background(), nil, testOpts())

		assert.False(t, outcome.Success)
		assert.Equal(t, "no rows extracted", outcome.Error)
		assert.Equal(t, 0, extractCalls)
	})

	t.Run("respects a custom batch size", func(t *testing.T) {
		t.Parallel()

		var sizes []int
		svc := crawl4ai.NewService(&mock.StructuredExtractor{
			HealthFn: func(context.Context) bool { return true },
			ExtractStructuredFn: func(_ context.Context, urls []string, _ synthara.ExtractionOptions) synthara.ExtractionResult {
				sizes = append(sizes, len(urls))
				return synthara.ExtractionResult{
					Success: true,
					Results: []synthara.StructuredResult{resultFor(urls[0], 1)},
				}
			},
		}, crawl4ai.WithBatchSize(4))

		svc.ExtractStructuredBulk(context.Background(), urlsN(10), testOpts())

		assert.Equal(t, []int{4, 4, 2}, sizes)
	})
}
