package synthara

import (
	"context"
	"time"
)

// MetadataJobID is the JobInput metadata key carrying the assigned job id.
const MetadataJobID = "jobId"

// JobParams are the caller-supplied targets for a new extraction job.
type JobParams struct {
	UserQuery string `json:"userQuery"`
	NumRows   int    `json:"numRows"`
	MaxURLs   int    `json:"maxUrls"`
}

// Validate returns an error if the params contain invalid fields.
func (p JobParams) Validate() error {
	if p.UserQuery == "" {
		return Errorf(EINVALID, "user query required")
	}
	if p.NumRows <= 0 {
		return Errorf(EINVALID, "number of rows must be positive")
	}
	if p.MaxURLs <= 0 {
		return Errorf(EINVALID, "max URLs must be positive")
	}
	return nil
}

// JobInput is a fully-specified extraction job payload: the user query,
// size targets, resolved candidate URLs, and metadata. Constructed once
// by the builder; immutable thereafter except for the job id injected
// into Metadata when the input is attached to a job.
type JobInput struct {
	UserQuery     string         `json:"userQuery"`
	NumRows       int            `json:"numRows"`
	MaxURLs       int            `json:"maxUrls"`
	CandidateURLs []string       `json:"candidateUrls"`
	Metadata      map[string]any `json:"metadata"`
}

// Job is an extraction job registered for asynchronous pickup.
// A job starts without input; the input is attached after the builder
// resolves it. Consumers must treat a nil Input as "not ready".
type Job struct {
	ID        string    `json:"appJobId"`
	Input     *JobInput `json:"input,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// JobService is a process-wide registry of extraction jobs keyed by an
// opaque job id, with single-slot "latest job" semantics: a polling
// worker only ever sees the most recently created job.
type JobService interface {
	// CreateJob allocates a new opaque id and stores a job with no
	// input yet.
	CreateJob(ctx context.Context, params JobParams) (*Job, error)

	// AttachInput sets or overwrites the input of the job with the
	// given id and injects the id into the input metadata. Attaching
	// to an unknown id is a silent no-op.
	AttachInput(ctx context.Context, jobID string, input *JobInput) error

	// LatestJob returns the most recently created job.
	// Returns ENOTFOUND if no job exists.
	LatestJob(ctx context.Context) (*Job, error)
}

// URLFinder discovers candidate URLs for a semantic query.
// Implementations hide the discovery strategy (sitemap walk, search
// results, LLM suggestion). Calls are one-shot and bounded; failures
// propagate to the caller.
type URLFinder interface {
	FindURLs(ctx context.Context, query string, max int) ([]string, error)
}

// URLProber filters a candidate list down to reachable URLs,
// preserving input order.
type URLProber interface {
	Probe(ctx context.Context, urls []string) ([]string, error)
}

// SeenFilter deduplicates URLs across discovery sources.
type SeenFilter interface {
	// Add records a URL as seen.
	Add(url string)

	// Seen returns true if the URL might have been seen before.
	// Implementations may allow false positives but not false negatives.
	Seen(url string) bool
}
