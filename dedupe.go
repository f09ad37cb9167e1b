package synthara

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DedupeRows removes duplicate rows, preserving first-occurrence order.
// Two rows are duplicates when their canonical JSON encodings match;
// encoding/json sorts map keys, so key order does not matter.
func DedupeRows(rows []Row) []Row {
	if len(rows) < 2 {
		return rows
	}

	seen := make(map[uint64]struct{}, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		key := hashRow(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

func hashRow(row Row) uint64 {
	b, err := json.Marshal(row)
	if err != nil {
		// Unmarshalable values (channels, funcs) never come off the
		// wire; fall back to the formatted value so the row survives.
		b = []byte(fmt.Sprintf("%v", row))
	}
	return xxhash.Sum64(b)
}
