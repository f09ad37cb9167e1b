package crawl4ai

import (
	"encoding/json"

	"github.com/synthara-ai/synthara"
)

// rawResponse mirrors the backend response loosely. Field shapes the
// backend is known to vary on (url vs source, rows vs data, name vs
// key) are all declared so the decode step can apply fallback rules.
type rawResponse struct {
	Success bool        `json:"success"`
	Results []rawResult `json:"results"`
	Error   string      `json:"error"`
}

type rawResult struct {
	URL    string           `json:"url"`
	Source string           `json:"source"`
	Title  string           `json:"title"`
	Rows   []map[string]any `json:"rows"`
	Data   []map[string]any `json:"data"`
	Schema []rawColumn      `json:"schema"`
}

type rawColumn struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// normalizeResponse converts an arbitrary backend response body into a
// validated ExtractionResult. Unknown or malformed shapes degrade to an
// empty result set, never an error; the rest of the system only ever
// sees the StructuredResult shape produced here.
//
// The final Success is true only if the backend reported success AND at
// least one usable result was produced: an HTTP 200 with zero usable
// rows is a logical failure.
func normalizeResponse(body []byte) synthara.ExtractionResult {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return failure("unparseable response body")
	}

	results := make([]synthara.StructuredResult, 0, len(raw.Results))
	for _, entry := range raw.Results {
		if res, ok := normalizeResult(entry); ok {
			results = append(results, res)
		}
	}

	if !raw.Success {
		msg := raw.Error
		if msg == "" {
			msg = "extraction failed"
		}
		return failure(msg)
	}
	if len(results) == 0 {
		return failure("no usable results in response")
	}

	return synthara.ExtractionResult{Success: true, Results: results}
}

// normalizeResult applies the per-entry fallback rules. Entries with no
// identity (neither url nor source) are dropped.
func normalizeResult(entry rawResult) (synthara.StructuredResult, bool) {
	url := entry.URL
	if url == "" {
		url = entry.Source
	}
	if url == "" {
		return synthara.StructuredResult{}, false
	}

	rawRows := entry.Rows
	if rawRows == nil {
		rawRows = entry.Data
	}
	rows := make([]synthara.Row, 0, len(rawRows))
	for _, r := range rawRows {
		rows = append(rows, synthara.Row(r))
	}
	rows = synthara.DedupeRows(rows)

	var schema []synthara.Column
	for _, col := range entry.Schema {
		name := col.Name
		if name == "" {
			name = col.Key
		}
		if name == "" {
			continue
		}
		typ := col.Type
		if typ == "" {
			typ = "string"
		}
		schema = append(schema, synthara.Column{
			Name:        name,
			Type:        typ,
			Description: col.Description,
		})
	}

	return synthara.StructuredResult{
		URL:    url,
		Title:  entry.Title,
		Rows:   rows,
		Schema: schema,
	}, true
}
