// Package crawl4ai provides a typed HTTP client for the Crawl4AI
// structured-extraction backend and the batch orchestration on top of
// it. The client owns request shaping, timeout-bounded health probing,
// and response normalization; it never retries internally.
package crawl4ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/synthara-ai/synthara"
)

// DefaultBaseURL is used when no base URL is configured via options or
// the CRAWL4AI_SERVICE_URL / CRAWL4AI_EXTRACT_URL environment variables.
const DefaultBaseURL = "http://localhost:11235"

// DefaultHealthTimeout bounds the liveness probe.
const DefaultHealthTimeout = 5 * time.Second

// Ensure Client implements synthara.StructuredExtractor at compile time.
var _ synthara.StructuredExtractor = (*Client)(nil)

// Client talks to one Crawl4AI backend over HTTP.
type Client struct {
	baseURL       string
	client        *http.Client
	healthTimeout time.Duration
	llmProvider   string
	llmModel      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithHealthTimeout bounds the health probe.
// Defaults to DefaultHealthTimeout (5s) if not specified.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) { c.healthTimeout = d }
}

// WithLLMDefaults overrides the default LLM provider and model applied
// to requests whose options leave them unset.
func WithLLMDefaults(provider, model string) Option {
	return func(c *Client) {
		c.llmProvider = provider
		c.llmModel = model
	}
}

// NewClient creates a Client. Configuration not supplied via options is
// read from the environment: CRAWL4AI_SERVICE_URL (falling back to
// CRAWL4AI_EXTRACT_URL) for the base URL, and CRAWL4AI_LLM_PROVIDER /
// CRAWL4AI_LLM_MODEL for the LLM defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:       baseURLFromEnv(),
		healthTimeout: DefaultHealthTimeout,
		llmProvider:   envOr("CRAWL4AI_LLM_PROVIDER", synthara.DefaultLLMProvider),
		llmModel:      envOr("CRAWL4AI_LLM_MODEL", synthara.DefaultLLMModel),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = http.DefaultClient
	}
	return c
}

// Health issues a bounded liveness probe against GET {base}/health.
// Any error, network failure, or non-2xx response yields false.
// The in-flight request is aborted when the timeout fires.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ExtractStructured issues one POST {base}/extract carrying the full
// URL set and options. All failure paths return a structured result;
// no error crosses this boundary.
func (c *Client) ExtractStructured(ctx context.Context, urls []string, opts synthara.ExtractionOptions) synthara.ExtractionResult {
	if err := opts.Validate(); err != nil {
		return failure(synthara.ErrorMessage(err))
	}
	if len(urls) == 0 {
		return failure("no URLs provided")
	}

	body, err := json.Marshal(c.shapeRequest(urls, opts))
	if err != nil {
		return failure(fmt.Sprintf("encoding request: %s", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return failure(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err.Error())
	}

	return normalizeResponse(raw)
}

// extractRequest is the wire shape of a POST /extract body.
type extractRequest struct {
	URLs       []string        `json:"urls"`
	Query      string          `json:"query"`
	TargetRows int             `json:"target_rows"`
	Strategy   string          `json:"strategy"`
	Chunking   chunkingPayload `json:"chunking"`
	LLM        llmPayload      `json:"llm"`
	Filters    *filtersPayload `json:"filters,omitempty"`
}

type chunkingPayload struct {
	WindowSize int `json:"window_size"`
	Overlap    int `json:"overlap"`
}

type llmPayload struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	JSONMode    bool    `json:"json_mode"`
}

type filtersPayload struct {
	IncludeHeadings []string `json:"include_headings,omitempty"`
}

// shapeRequest fills unset option fields with the client defaults.
func (c *Client) shapeRequest(urls []string, opts synthara.ExtractionOptions) extractRequest {
	req := extractRequest{
		URLs:       urls,
		Query:      opts.Query,
		TargetRows: opts.TargetRows,
		Strategy:   "llm",
		Chunking: chunkingPayload{
			WindowSize: synthara.DefaultChunkWindowSize,
			Overlap:    synthara.DefaultChunkOverlap,
		},
		LLM: llmPayload{
			Provider:    c.llmProvider,
			Model:       c.llmModel,
			Temperature: synthara.DefaultLLMTemperature,
			JSONMode:    true,
		},
	}
	if opts.Chunking != nil {
		req.Chunking = chunkingPayload{
			WindowSize: opts.Chunking.WindowSize,
			Overlap:    opts.Chunking.Overlap,
		}
	}
	if opts.LLM != nil {
		req.LLM = llmPayload{
			Provider:    opts.LLM.Provider,
			Model:       opts.LLM.Model,
			Temperature: opts.LLM.Temperature,
			JSONMode:    opts.LLM.JSONMode,
		}
		if req.LLM.Provider == "" {
			req.LLM.Provider = c.llmProvider
		}
		if req.LLM.Model == "" {
			req.LLM.Model = c.llmModel
		}
	}
	if len(opts.IncludeHeadings) > 0 {
		req.Filters = &filtersPayload{IncludeHeadings: opts.IncludeHeadings}
	}
	return req
}

func failure(msg string) synthara.ExtractionResult {
	return synthara.ExtractionResult{Success: false, Results: []synthara.StructuredResult{}, Error: msg}
}

func baseURLFromEnv() string {
	if u := os.Getenv("CRAWL4AI_SERVICE_URL"); u != "" {
		return u
	}
	if u := os.Getenv("CRAWL4AI_EXTRACT_URL"); u != "" {
		return u
	}
	return DefaultBaseURL
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
