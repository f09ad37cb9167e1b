package synthara_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synthara-ai/synthara"
	"github.com/synthara-ai/synthara/mock"
)

func params() synthara.JobParams {
	return synthara.JobParams{UserQuery: "ev charging stations", NumRows: 25, MaxURLs: 4}
}

func finderReturning(urls ...string) *mock.URLFinder {
	return &mock.URLFinder{
		FindURLsFn: func(context.Context, string, int) ([]string, error) {
			return urls, nil
		},
	}
}

func TestBuilder_BuildJobInput(t *testing.T) {
	t.Parallel()

	t.Run("merges finder results with deduplication", func(t *testing.T) {
		t.Parallel()

		b := &synthara.Builder{
			Finders: []synthara.URLFinder{
				finderReturning("https://a.com", "https://b.com"),
				finderReturning("https://b.com", "https://c.com"),
			},
		}

		input, err := b.BuildJobInput(context.Background(), params())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, input.CandidateURLs)
		assert.Equal(t, "ev charging stations", input.UserQuery)
		assert.Equal(t, 25, input.NumRows)
		assert.Equal(t, 4, input.MaxURLs)
		assert.Contains(t, input.Metadata, "createdAt")
		assert.Equal(t, 25, input.Metadata["requestedRows"])
	})

	t.Run("stops consulting finders once max URLs collected", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		b := &synthara.Builder{
			Finders: []synthara.URLFinder{
				finderReturning("https://a.com", "https://b.com", "https://c.com", "https://d.com", "https://e.com"),
				&mock.URLFinder{
					FindURLsFn: func(context.Context, string, int) ([]string, error) {
						secondCalled = true
						return nil, nil
					},
				},
			},
		}

		input, err := b.BuildJobInput(context.Background(), params())

		require.NoError(t, err)
		assert.Len(t, input.CandidateURLs, 4)
		assert.False(t, secondCalled)
	})

	t.Run("finder failure fails the build", func(t *testing.T) {
		t.Parallel()

		b := &synthara.Builder{
			Finders: []synthara.URLFinder{
				&mock.URLFinder{
					FindURLsFn: func(context.Context, string, int) ([]string, error) {
						return nil, errors.New("search backend down")
					},
				},
			},
		}

		_, err := b.BuildJobInput(context.Background(), params())

		require.Error(t, err)
		assert.Equal(t, synthara.EINTERNAL, synthara.ErrorCode(err))
	})

	t.Run("prober drops unreachable candidates", func(t *testing.T) {
		t.Parallel()

		b := &synthara.Builder{
			Finders: []synthara.URLFinder{
				finderReturning("https://a.com", "https://dead.com", "https://b.com"),
			},
			Prober: &mock.URLProber{
				ProbeFn: func(_ context.Context, urls []string) ([]string, error) {
					var kept []string
					for _, u := range urls {
						if u != "https://dead.com" {
							kept = append(kept, u)
						}
					}
					return kept, nil
				},
			},
		}

		input, err := b.BuildJobInput(context.Background(), params())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.com", "https://b.com"}, input.CandidateURLs)
	})

	t.Run("no candidates is a build failure", func(t *testing.T) {
		t.Parallel()

		b := &synthara.Builder{Finders: []synthara.URLFinder{finderReturning()}}

		_, err := b.BuildJobInput(context.Background(), params())

		assert.Equal(t, synthara.ENOTFOUND, synthara.ErrorCode(err))
	})

	t.Run("rejects invalid params before discovery", func(t *testing.T) {
		t.Parallel()

		var called bool
		b := &synthara.Builder{
			Finders: []synthara.URLFinder{
				&mock.URLFinder{
					FindURLsFn: func(context.Context, string, int) ([]string, error) {
						called = true
						return nil, nil
					},
				},
			},
		}

		_, err := b.BuildJobInput(context.Background(), synthara.JobParams{})

		assert.Equal(t, synthara.EINVALID, synthara.ErrorCode(err))
		assert.False(t, called)
	})
}
