package main

import (
	"encoding/json"
	"fmt"

	"github.com/synthara-ai/synthara"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	opts := synthara.ExtractionOptions{
		Query:      c.Query,
		TargetRows: c.Rows,
	}

	outcome := deps.Bulk.ExtractStructuredBulk(deps.Ctx, c.URLs, opts)
	if !outcome.Success {
		return fmt.Errorf("extraction failed: %s", outcome.Error)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Results)
	}

	csv := synthara.FormatCSV(outcome.Results)
	if csv == "" {
		fmt.Fprintln(deps.Stdout, "No rows extracted.")
		return nil
	}
	fmt.Fprint(deps.Stdout, csv)
	return nil
}

// Run executes the health command.
func (c *HealthCmd) Run(deps *Dependencies) error {
	if !deps.Extractor.Health(deps.Ctx) {
		return fmt.Errorf("extraction backend is unavailable")
	}
	fmt.Fprintln(deps.Stdout, "Extraction backend is healthy.")
	return nil
}
