// Package mem provides in-memory, process-lifetime implementations of
// synthara services. The job registry here is the faithful rendition of
// the single-process store the extraction API runs against.
package mem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/synthara-ai/synthara"
)

// Ensure JobService implements synthara.JobService at compile time.
var _ synthara.JobService = (*JobService)(nil)

// JobService is a mutex-guarded job registry with an explicit latest-id
// pointer. Jobs are never evicted; they persist for process lifetime.
//
// The latest pointer moves on create only: attaching input to an
// earlier job updates its record in place without making it "latest",
// so a polling worker always sees the most recently created job.
type JobService struct {
	mu       sync.Mutex
	jobs     map[string]*synthara.Job
	latestID string
}

// NewJobService creates an empty JobService.
func NewJobService() *JobService {
	return &JobService{jobs: make(map[string]*synthara.Job)}
}

// CreateJob allocates a new opaque id and registers a job with no input.
func (s *JobService) CreateJob(_ context.Context, params synthara.JobParams) (*synthara.Job, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	job := &synthara.Job{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.latestID = job.ID
	s.mu.Unlock()

	snapshot := *job
	return &snapshot, nil
}

// AttachInput sets or overwrites the input of the job with the given id
// and injects the id into the input metadata. Unknown ids are a silent
// no-op; callers are expected to hold an id from CreateJob.
func (s *JobService) AttachInput(_ context.Context, jobID string, input *synthara.JobInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}

	if input != nil {
		if input.Metadata == nil {
			input.Metadata = make(map[string]any)
		}
		input.Metadata[synthara.MetadataJobID] = jobID
	}
	job.Input = input
	return nil
}

// LatestJob returns a snapshot of the most recently created job.
// Returns ENOTFOUND if no job exists. A job created but not yet
// attached is returned with a nil Input; consumers must treat that as
// "not ready", not an error.
func (s *JobService) LatestJob(_ context.Context) (*synthara.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[s.latestID]
	if !ok {
		return nil, synthara.Errorf(synthara.ENOTFOUND, "no jobs registered")
	}

	snapshot := *job
	return &snapshot, nil
}
