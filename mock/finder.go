package mock

import (
	"context"

	"github.com/synthara-ai/synthara"
)

var _ synthara.URLFinder = (*URLFinder)(nil)

// URLFinder is a mock implementation of synthara.URLFinder.
type URLFinder struct {
	FindURLsFn func(ctx context.Context, query string, max int) ([]string, error)
}

func (f *URLFinder) FindURLs(ctx context.Context, query string, max int) ([]string, error) {
	return f.FindURLsFn(ctx, query, max)
}

var _ synthara.URLProber = (*URLProber)(nil)

// URLProber is a mock implementation of synthara.URLProber.
type URLProber struct {
	ProbeFn func(ctx context.Context, urls []string) ([]string, error)
}

func (p *URLProber) Probe(ctx context.Context, urls []string) ([]string, error) {
	return p.ProbeFn(ctx, urls)
}
