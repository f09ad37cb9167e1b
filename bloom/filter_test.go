package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synthara-ai/synthara/bloom"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("reports added URLs as seen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		f.Add("https://example.com/a")

		assert.True(t, f.Seen("https://example.com/a"))
	})

	t.Run("reports unseen URLs as unseen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		for i := 0; i < 100; i++ {
			f.Add(fmt.Sprintf("https://example.com/%d", i))
		}

		// With 100 entries in a filter sized for 1000 at 1% FP, a miss
		// on a single probe is overwhelmingly likely.
		assert.False(t, f.Seen("https://other.example.com/never-added"))
	})
}
