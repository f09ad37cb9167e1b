package http

import (
	"context"
	"net/http"
	"time"

	"github.com/synthara-ai/synthara"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds each individual reachability check.
const DefaultProbeTimeout = 10 * time.Second

// Ensure Prober implements synthara.URLProber at compile time.
var _ synthara.URLProber = (*Prober)(nil)

// Prober checks candidate URLs for reachability with concurrent HEAD
// requests, keeping input order in the surviving list.
type Prober struct {
	client      *http.Client
	concurrency int
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeClient sets the underlying HTTP client.
func WithProbeClient(client *http.Client) ProberOption {
	return func(p *Prober) { p.client = client }
}

// WithProbeConcurrency caps concurrent probes. Defaults to 5.
func WithProbeConcurrency(n int) ProberOption {
	return func(p *Prober) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewProber creates a Prober.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{concurrency: 5}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: DefaultProbeTimeout}
	}
	return p
}

// Probe returns the subset of urls that answered a HEAD request with a
// non-5xx status, in input order. Individual probe failures drop the
// URL; only context cancellation fails the whole probe.
func (p *Prober) Probe(ctx context.Context, urls []string) ([]string, error) {
	reachable := make([]bool, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			reachable[i] = p.check(gctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(urls))
	for i, u := range urls {
		if reachable[i] {
			kept = append(kept, u)
		}
	}
	return kept, nil
}

// check reports whether a single URL looks servable. Some sites reject
// HEAD outright, so 4xx still counts as reachable; only transport
// errors and 5xx drop the URL.
func (p *Prober) check(ctx context.Context, u string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}
