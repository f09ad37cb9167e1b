package mock

import (
	"context"

	"github.com/synthara-ai/synthara"
)

var _ synthara.JobService = (*JobService)(nil)

// JobService is a mock implementation of synthara.JobService.
type JobService struct {
	CreateJobFn   func(ctx context.Context, params synthara.JobParams) (*synthara.Job, error)
	AttachInputFn func(ctx context.Context, jobID string, input *synthara.JobInput) error
	LatestJobFn   func(ctx context.Context) (*synthara.Job, error)
}

func (s *JobService) CreateJob(ctx context.Context, params synthara.JobParams) (*synthara.Job, error) {
	return s.CreateJobFn(ctx, params)
}

func (s *JobService) AttachInput(ctx context.Context, jobID string, input *synthara.JobInput) error {
	return s.AttachInputFn(ctx, jobID, input)
}

func (s *JobService) LatestJob(ctx context.Context) (*synthara.Job, error) {
	return s.LatestJobFn(ctx)
}
