package synthara

import (
	"context"
	"time"
)

// Builder converts a bare user query plus row/URL targets into a
// fully-specified JobInput. It is a side-effect-free transformer:
// URL discovery is delegated to the configured finders, each called
// once, and any finder or probe failure fails the build.
type Builder struct {
	// Finders are consulted in order; their results are merged with
	// deduplication until MaxURLs candidates are collected.
	Finders []URLFinder

	// Dedup tracks URLs already collected across finders.
	// If nil, an exact in-memory set is used.
	Dedup SeenFilter

	// Prober, if set, drops unreachable candidates before they are
	// committed to the input.
	Prober URLProber
}

// BuildJobInput resolves candidate URLs for the query and packages them
// with the requested targets and creation metadata.
func (b *Builder) BuildJobInput(ctx context.Context, params JobParams) (*JobInput, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	dedup := b.Dedup
	if dedup == nil {
		dedup = newMapFilter()
	}

	var urls []string
	for _, finder := range b.Finders {
		found, err := finder.FindURLs(ctx, params.UserQuery, params.MaxURLs)
		if err != nil {
			return nil, Errorf(EINTERNAL, "url discovery failed: %s", err)
		}
		for _, u := range found {
			if dedup.Seen(u) {
				continue
			}
			dedup.Add(u)
			urls = append(urls, u)
		}
		if len(urls) >= params.MaxURLs {
			break
		}
	}

	if b.Prober != nil && len(urls) > 0 {
		reachable, err := b.Prober.Probe(ctx, urls)
		if err != nil {
			return nil, Errorf(EINTERNAL, "url probe failed: %s", err)
		}
		urls = reachable
	}

	if len(urls) > params.MaxURLs {
		urls = urls[:params.MaxURLs]
	}
	if len(urls) == 0 {
		return nil, Errorf(ENOTFOUND, "no candidate URLs found for query %q", params.UserQuery)
	}

	return &JobInput{
		UserQuery:     params.UserQuery,
		NumRows:       params.NumRows,
		MaxURLs:       params.MaxURLs,
		CandidateURLs: urls,
		Metadata: map[string]any{
			"createdAt":     time.Now().UTC().Format(time.RFC3339),
			"requestedRows": params.NumRows,
			"maxUrls":       params.MaxURLs,
		},
	}, nil
}

// mapFilter is the exact-set fallback used when no SeenFilter is injected.
type mapFilter map[string]struct{}

func newMapFilter() mapFilter { return make(mapFilter) }

func (f mapFilter) Add(url string) { f[url] = struct{}{} }

func (f mapFilter) Seen(url string) bool {
	_, ok := f[url]
	return ok
}
