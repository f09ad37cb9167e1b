package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synthara-ai/synthara"
	"github.com/synthara-ai/synthara/sqlite"
)

// mustOpenDB opens an in-memory database for testing.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestJobService_CreateJob(t *testing.T) {
	t.Parallel()

	t.Run("registers a job with an opaque id and no input", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))

		job, err := svc.CreateJob(context.Background(), synthara.JobParams{
			UserQuery: "best pizza in rome",
			NumRows:   10,
			MaxURLs:   5,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, job.ID)
		assert.Nil(t, job.Input)
		assert.False(t, job.CreatedAt.IsZero())
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))

		_, err := svc.CreateJob(context.Background(), synthara.JobParams{NumRows: 10, MaxURLs: 5})
		assert.Equal(t, synthara.EINVALID, synthara.ErrorCode(err))
	})
}

func TestJobService_AttachInput(t *testing.T) {
	t.Parallel()

	t.Run("round-trips input through the latest job", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))
		ctx := context.Background()

		job, err := svc.CreateJob(ctx, synthara.JobParams{UserQuery: "q", NumRows: 10, MaxURLs: 5})
		require.NoError(t, err)

		input := &synthara.JobInput{
			UserQuery:     "q",
			NumRows:       10,
			MaxURLs:       5,
			CandidateURLs: []string{"https://a.com", "https://b.com"},
		}
		require.NoError(t, svc.AttachInput(ctx, job.ID, input))

		latest, err := svc.LatestJob(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest.Input)
		assert.Equal(t, "q", latest.Input.UserQuery)
		assert.Equal(t, []string{"https://a.com", "https://b.com"}, latest.Input.CandidateURLs)
		assert.Equal(t, job.ID, latest.Input.Metadata[synthara.MetadataJobID])
	})

	t.Run("is a no-op for unknown job ids", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))
		ctx := context.Background()

		job, err := svc.CreateJob(ctx, synthara.JobParams{UserQuery: "q", NumRows: 10, MaxURLs: 5})
		require.NoError(t, err)

		require.NoError(t, svc.AttachInput(ctx, "no-such-id", &synthara.JobInput{UserQuery: "x"}))

		latest, err := svc.LatestJob(ctx)
		require.NoError(t, err)
		assert.Equal(t, job.ID, latest.ID)
		assert.Nil(t, latest.Input)
	})
}

func TestJobService_LatestJob(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when no job exists", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))

		_, err := svc.LatestJob(context.Background())
		assert.Equal(t, synthara.ENOTFOUND, synthara.ErrorCode(err))
	})

	t.Run("attaching input to an earlier job does not change latest", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewJobService(mustOpenDB(t))
		ctx := context.Background()

		first, err := svc.CreateJob(ctx, synthara.JobParams{UserQuery: "first", NumRows: 10, MaxURLs: 5})
		require.NoError(t, err)
		second, err := svc.CreateJob(ctx, synthara.JobParams{UserQuery: "second", NumRows: 10, MaxURLs: 5})
		require.NoError(t, err)

		require.NoError(t, svc.AttachInput(ctx, first.ID, &synthara.JobInput{UserQuery: "first"}))

		latest, err := svc.LatestJob(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
		assert.Nil(t, latest.Input)
	})
}
