package main

import (
	"encoding/json"
	"fmt"

	"github.com/synthara-ai/synthara"
)

// Run executes the job create command. It registers the job first so a
// polling worker can see it, then builds and attaches the input.
func (c *JobCreateCmd) Run(deps *Dependencies) error {
	params := synthara.JobParams{
		UserQuery: c.Query,
		NumRows:   c.Rows,
		MaxURLs:   c.MaxURLs,
	}

	job, err := deps.Jobs.CreateJob(deps.Ctx, params)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", synthara.ErrorMessage(err))
		return err
	}

	input, err := deps.Builder.BuildJobInput(deps.Ctx, params)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", synthara.ErrorMessage(err))
		return err
	}

	if err := deps.Jobs.AttachInput(deps.Ctx, job.ID, input); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created job %s with %d candidate URLs.\n", job.ID, len(input.CandidateURLs))
	return nil
}

// Run executes the job latest command.
func (c *JobLatestCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.LatestJob(deps.Ctx)
	if err != nil {
		if synthara.ErrorCode(err) == synthara.ENOTFOUND {
			fmt.Fprintln(deps.Stdout, "No jobs found. Use 'synthara job create' to create one.")
			return nil
		}
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(job)
}
