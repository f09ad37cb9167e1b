package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/synthara-ai/synthara"
)

// Compile-time interface verification.
var _ synthara.JobService = (*JobService)(nil)

// JobService implements synthara.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob allocates a new opaque id and stores a job with no input.
func (s *JobService) CreateJob(ctx context.Context, params synthara.JobParams) (*synthara.Job, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	job := &synthara.Job{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, input, created_at)
		VALUES (?, NULL, ?)
	`, job.ID, job.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return job, nil
}

// AttachInput sets or overwrites the input of the job with the given
// id, injecting the id into the input metadata. Unknown ids are a
// silent no-op. The jobs row's seq is untouched, so attaching never
// changes which job is "latest".
func (s *JobService) AttachInput(ctx context.Context, jobID string, input *synthara.JobInput) error {
	var encoded any
	if input != nil {
		if input.Metadata == nil {
			input.Metadata = make(map[string]any)
		}
		input.Metadata[synthara.MetadataJobID] = jobID

		b, err := json.Marshal(input)
		if err != nil {
			return fmt.Errorf("failed to encode job input: %w", err)
		}
		encoded = string(b)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET input = ? WHERE id = ?
	`, encoded, jobID)
	return err
}

// LatestJob returns the most recently created job.
// Returns ENOTFOUND if no job exists.
func (s *JobService) LatestJob(ctx context.Context) (*synthara.Job, error) {
	var job synthara.Job
	var input sql.NullString
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, input, created_at
		FROM jobs
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&job.ID, &input, &createdAt)

	if err == sql.ErrNoRows {
		return nil, synthara.Errorf(synthara.ENOTFOUND, "no jobs registered")
	}
	if err != nil {
		return nil, err
	}

	job.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if input.Valid {
		var in synthara.JobInput
		if err := json.Unmarshal([]byte(input.String), &in); err != nil {
			return nil, fmt.Errorf("failed to decode job input: %w", err)
		}
		job.Input = &in
	}

	return &job, nil
}
