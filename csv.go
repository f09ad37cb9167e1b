package synthara

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatCSV flattens the rows of all results into a single CSV table.
// Columns are the union of keys across every row, in first-seen order,
// so heterogeneous row shapes render without loss. Non-scalar values
// are encoded as JSON. Returns "" when there are no rows.
func FormatCSV(results []StructuredResult) string {
	var headers []string
	seen := make(map[string]bool)
	var rows []Row

	for _, res := range results {
		for _, row := range res.Rows {
			rows = append(rows, row)
			for key := range row {
				if !seen[key] {
					seen[key] = true
					headers = append(headers, key)
				}
			}
		}
	}
	if len(rows) == 0 {
		return ""
	}

	// First-seen order within a row is not deterministic for Go maps,
	// so headers from a single row are discovered in map iteration
	// order. Stabilize by an extra pass over the schema if provided.
	headers = stableHeaders(results, headers, seen)

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(headers)
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = formatCell(row[h])
		}
		_ = w.Write(record)
	}
	w.Flush()
	return sb.String()
}

// stableHeaders orders columns by the first result schema that names
// them, then appends the remaining discovered keys sorted.
func stableHeaders(results []StructuredResult, discovered []string, present map[string]bool) []string {
	var headers []string
	used := make(map[string]bool)

	for _, res := range results {
		for _, col := range res.Schema {
			if present[col.Name] && !used[col.Name] {
				used[col.Name] = true
				headers = append(headers, col.Name)
			}
		}
	}

	rest := make([]string, 0, len(discovered))
	for _, h := range discovered {
		if !used[h] {
			rest = append(rest, h)
		}
	}
	sort.Strings(rest)
	return append(headers, rest...)
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, bool, int, int64:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
