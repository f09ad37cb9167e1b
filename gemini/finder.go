// Package gemini provides Google Gemini-backed implementations of
// synthara services.
package gemini

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/synthara-ai/synthara"
	"google.golang.org/genai"
)

// DefaultModel is the model used for URL suggestion.
const DefaultModel = "gemini-2.5-flash"

// Ensure Finder implements synthara.URLFinder at compile time.
var _ synthara.URLFinder = (*Finder)(nil)

// Finder suggests candidate URLs for a semantic query using Gemini.
// It is a one-shot call; failures propagate to the caller.
type Finder struct {
	client *genai.Client
	model  string
}

// NewFinder creates a new Finder. An empty model selects DefaultModel.
func NewFinder(client *genai.Client, model string) *Finder {
	if model == "" {
		model = DefaultModel
	}
	return &Finder{client: client, model: model}
}

// FindURLs asks the model for up to max URLs likely to contain data
// matching the query.
func (f *Finder) FindURLs(ctx context.Context, query string, max int) ([]string, error) {
	if query == "" {
		return nil, synthara.Errorf(synthara.EINVALID, "query required")
	}
	if max <= 0 {
		return nil, synthara.Errorf(synthara.EINVALID, "max must be positive")
	}

	result, err := f.client.Models.GenerateContent(ctx, f.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(query, max)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, synthara.Errorf(synthara.EINTERNAL, "gemini returned nil result")
	}

	return ParseURLs(result.Text(), max), nil
}

// BuildConfig returns the GenerateContentConfig for URL suggestion.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You suggest public web pages likely to contain structured, tabular data for a user's query. Respond with one absolute URL per line and nothing else. Prefer pages with tables or lists. Never invent domains.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt for a query and URL cap.
func BuildUserPrompt(query string, max int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\n", query)
	fmt.Fprintf(&sb, "List up to %d URLs, one per line.", max)
	return sb.String()
}

// ParseURLs extracts up to max absolute http(s) URLs from a model
// response, one candidate per line, tolerating list markers.
func ParseURLs(text string, max int) []string {
	urls := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line == "" {
			continue
		}
		parsed, err := url.Parse(line)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			continue
		}
		urls = append(urls, parsed.String())
		if len(urls) >= max {
			break
		}
	}
	return urls
}
