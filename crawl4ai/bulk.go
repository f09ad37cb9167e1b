package crawl4ai

import (
	"context"

	"github.com/synthara-ai/synthara"
	"golang.org/x/time/rate"
)

// DefaultBatchSize is the number of URLs submitted per extraction call,
// chosen to respect backend capacity.
const DefaultBatchSize = 5

// ErrServiceUnavailable is the outcome error reported when the health
// probe fails before any batch is attempted.
const ErrServiceUnavailable = "Crawl4AI service unavailable"

// errNoRows is the generic fallback when every batch produced zero rows
// without reporting an error string.
const errNoRows = "no rows extracted"

// Ensure Service implements synthara.BulkExtractor at compile time.
var _ synthara.BulkExtractor = (*Service)(nil)

// Service runs extraction across a large URL set without exceeding
// backend capacity per call. Batches are issued sequentially, trading
// throughput for predictable backend load and simple error attribution:
// only one batch's error is ever current.
type Service struct {
	extractor synthara.StructuredExtractor
	batchSize int
	limiter   *rate.Limiter
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBatchSize overrides the batch size. Values below 1 are ignored.
func WithBatchSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithRateLimit throttles batch submissions to the given requests per
// second. Sequencing is preserved; the limiter only spaces calls out.
func WithRateLimit(rps float64) ServiceOption {
	return func(s *Service) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewService creates a Service on top of the given extractor.
func NewService(extractor synthara.StructuredExtractor, opts ...ServiceOption) *Service {
	s := &Service{
		extractor: extractor,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// aggregate is the immutable fold state carried across batches.
type aggregate struct {
	results []synthara.StructuredResult
	lastErr string
}

// ExtractStructuredBulk probes backend health, partitions urls into
// contiguous fixed-size batches preserving original order, and folds
// sequential extraction calls into one outcome. A failing batch records
// its error as the latest failure reason and the run continues; the
// outcome is a failure only when no batch produced any result.
func (s *Service) ExtractStructuredBulk(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.BatchOutcome {
	if !s.extractor.Health(ctx) {
		return synthara.BatchOutcome{
			Success: false,
			Results: []synthara.StructuredResult{},
			Error:   ErrServiceUnavailable,
		}
	}

	agg := aggregate{}
	for _, batch := range partition(urls, s.batchSize) {
		agg = s.step(ctx, agg, batch, opts)
	}

	if len(agg.results) == 0 {
		msg := agg.lastErr
		if msg == "" {
			msg = errNoRows
		}
		return synthara.BatchOutcome{
			Success: false,
			Results: []synthara.StructuredResult{},
			Error:   msg,
		}
	}

	return synthara.BatchOutcome{Success: true, Results: agg.results}
}

// step runs one batch and returns the next fold state. Results append
// in batch-submission order; each result keeps its internal row order.
func (s *Service) step(ctx context.Context, agg aggregate, batch []string, opts synthara.ExtractionOptions) aggregate {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return aggregate{results: agg.results, lastErr: err.Error()}
		}
	}

	res := s.extractor.ExtractStructured(ctx, batch, opts)
	if !res.Success {
		return aggregate{results: agg.results, lastErr: res.Error}
	}
	return aggregate{
		results: append(agg.results, res.Results...),
		lastErr: agg.lastErr,
	}
}

// partition splits urls into contiguous batches of at most size,
// preserving original order.
func partition(urls []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]string
	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		batches = append(batches, urls[start:end])
	}
	return batches
}
