package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/synthara-ai/synthara"
	"github.com/synthara-ai/synthara/bloom"
	"github.com/synthara-ai/synthara/crawl4ai"
	"github.com/synthara-ai/synthara/gemini"
	"github.com/synthara-ai/synthara/goquery"
	synthttp "github.com/synthara-ai/synthara/http"
	syntslog "github.com/synthara-ai/synthara/slog"
	"github.com/synthara-ai/synthara/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the job registry.
	DB *sqlite.DB

	// Job registry, exposed for end-to-end testing.
	Jobs synthara.JobService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("synthara"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'synthara --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Extraction backend client, decorated with batch logging.
	client := crawl4ai.NewClient()
	deps.Extractor = syntslog.NewLoggingExtractor(client, logger)
	deps.Bulk = crawl4ai.NewService(deps.Extractor)

	// Commands that touch the job registry need the database.
	if cmd == "job" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SYNTHARA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Jobs = sqlite.NewJobService(m.DB)
		deps.Jobs = m.Jobs
		deps.Builder = m.newBuilder(ctx, stderr)
	}

	return kongCtx.Run(deps)
}

// newBuilder wires the candidate URL discovery chain: sitemap walk for
// site-shaped queries, Gemini suggestions when an API key is present,
// and search-result scraping as the last resort.
func (m *Main) newBuilder(ctx context.Context, stderr io.Writer) *synthara.Builder {
	finders := []synthara.URLFinder{
		synthttp.NewSitemapFinder(nil),
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid; continuing without LLM URL suggestions")
		} else {
			finders = append(finders, gemini.NewFinder(client, ""))
		}
	}

	finders = append(finders, goquery.NewSearchFinder())

	return &synthara.Builder{
		Finders: finders,
		Dedup:   bloom.NewFilter(builderExpectedURLs, builderFalsePositiveRate),
		Prober:  synthttp.NewProber(),
	}
}

// Candidate dedup sizing for the builder's Bloom filter.
const (
	builderExpectedURLs      = 10000
	builderFalsePositiveRate = 0.01
)

func defaultDBPath() string {
	if path := os.Getenv("SYNTHARA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "synthara.db"
	}
	dir := filepath.Join(home, ".synthara")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "synthara.db")
}
