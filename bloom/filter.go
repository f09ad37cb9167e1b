// Package bloom provides probabilistic URL deduplication for candidate
// discovery, where merged finder outputs can reach tens of thousands of
// URLs.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/synthara-ai/synthara"
)

// Ensure Filter implements synthara.SeenFilter at compile time.
var _ synthara.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for URL deduplication.
// False positives (a never-seen URL reported as seen) are possible;
// false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Bloom filter sized for n expected URLs with the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Seen returns true if the URL might have been seen before.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}
