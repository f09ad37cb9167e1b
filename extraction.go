package synthara

import "context"

// Default extraction option values, matching the Crawl4AI backend defaults.
const (
	DefaultChunkWindowSize = 600
	DefaultChunkOverlap    = 60
	DefaultLLMProvider     = "openai"
	DefaultLLMModel        = "gpt-4o-mini"
	DefaultLLMTemperature  = 0.1
)

// ChunkingOptions controls how page text is windowed before extraction.
type ChunkingOptions struct {
	WindowSize int `json:"windowSize"`
	Overlap    int `json:"overlap"`
}

// LLMOptions selects the model the backend uses for extraction.
type LLMOptions struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	JSONMode    bool    `json:"jsonMode"`
}

// ExtractionOptions describes one structured extraction request.
// The zero values of the optional fields are replaced with defaults
// when the request is shaped; construct once and treat as immutable.
type ExtractionOptions struct {
	// Query is the semantic description of the rows to extract. Required.
	Query string `json:"query"`

	// TargetRows is the total number of rows the caller wants. Required.
	TargetRows int `json:"targetRows"`

	// Chunking overrides the default text windowing if non-nil.
	Chunking *ChunkingOptions `json:"chunking,omitempty"`

	// LLM overrides the default model selection if non-nil.
	LLM *LLMOptions `json:"llm,omitempty"`

	// IncludeHeadings restricts extraction to page sections under the
	// given headings. Empty means no restriction.
	IncludeHeadings []string `json:"includeHeadings,omitempty"`
}

// Validate returns an error if the options contain invalid fields.
func (o ExtractionOptions) Validate() error {
	if o.Query == "" {
		return Errorf(EINVALID, "extraction query required")
	}
	if o.TargetRows <= 0 {
		return Errorf(EINVALID, "target rows must be positive")
	}
	if o.LLM != nil && (o.LLM.Temperature < 0 || o.LLM.Temperature > 2) {
		return Errorf(EINVALID, "llm temperature must be between 0 and 2")
	}
	return nil
}

// Row is one extracted record. Key sets may differ across rows on the
// same page; the schema is inferred, not enforced.
type Row map[string]any

// Column describes one inferred column of an extracted row set.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// StructuredResult holds the rows extracted from a single URL.
// Rows may be empty: the URL was processed but yielded no data,
// which is distinct from the URL failing.
type StructuredResult struct {
	URL    string   `json:"url"`
	Title  string   `json:"title,omitempty"`
	Rows   []Row    `json:"rows"`
	Schema []Column `json:"schema,omitempty"`
}

// ExtractionResult is the outcome of a single extraction call.
// Extraction clients never return Go errors across their public
// boundary; all failure paths are carried in Error.
type ExtractionResult struct {
	Success bool
	Results []StructuredResult
	Error   string
}

// BatchOutcome is the aggregate produced by a bulk extraction run.
// Invariant: Success is true iff Results is non-empty. Error holds the
// last observed failure reason and is populated only when Results is
// empty; failures in a partially successful run are swallowed.
type BatchOutcome struct {
	Success bool
	Results []StructuredResult
	Error   string
}

// StructuredExtractor talks to one extraction backend.
// Implementations never retry internally; retry and aggregation policy
// belongs to the bulk orchestrator.
type StructuredExtractor interface {
	// Health reports whether the backend is reachable. The probe is
	// bounded by an implementation-configured timeout; any failure
	// yields false, never an error.
	Health(ctx context.Context) bool

	// ExtractStructured issues one request carrying the full URL set.
	ExtractStructured(ctx context.Context, urls []string, opts ExtractionOptions) ExtractionResult
}

// BulkExtractor runs extraction across a large URL set in batches and
// produces one coherent outcome. This is the single entry point the
// rest of the system calls to obtain structured rows.
type BulkExtractor interface {
	ExtractStructuredBulk(ctx context.Context, urls []string, opts ExtractionOptions) BatchOutcome
}
