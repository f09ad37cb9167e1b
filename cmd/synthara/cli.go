package main

import (
	"context"
	"io"

	"github.com/synthara-ai/synthara"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor synthara.StructuredExtractor
	Bulk      synthara.BulkExtractor
	Jobs      synthara.JobService
	Builder   *synthara.Builder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract structured rows from URLs"`
	Job     JobCmd     `cmd:"" help:"Manage extraction jobs"`
	Health  HealthCmd  `cmd:"" help:"Check extraction backend availability"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Query string   `arg:"" help:"Semantic query describing the rows to extract"`
	URLs  []string `arg:"" help:"URLs to extract from"`
	Rows  int      `short:"r" default:"25" help:"Target number of rows"`
	JSON  bool     `help:"Print JSON instead of CSV"`
}

// JobCmd groups the job registry subcommands.
type JobCmd struct {
	Create JobCreateCmd `cmd:"" help:"Create a job and build its extraction input"`
	Latest JobLatestCmd `cmd:"" help:"Show the most recently created job"`
}

// JobCreateCmd is the "job create" subcommand.
type JobCreateCmd struct {
	Query   string `arg:"" help:"Semantic query describing the rows to extract"`
	Rows    int    `short:"r" default:"25" help:"Target number of rows"`
	MaxURLs int    `short:"u" default:"10" help:"Maximum candidate URLs"`
}

// JobLatestCmd is the "job latest" subcommand.
type JobLatestCmd struct{}

// HealthCmd is the "health" subcommand.
type HealthCmd struct{}
