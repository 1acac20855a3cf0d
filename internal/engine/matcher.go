package engine

import (
	"context"
	"strings"

	"github.com/rshade/namesearch/internal/engine/batch"
)

// ScanFunc scans one batch. Implementations must not retain b or mutate
// shared state, and should return ctx.Err() promptly once ctx is done.
type ScanFunc func(ctx context.Context, b batch.Batch, names NameSet) (MatchResult, error)

// Scan finds every occurrence of every name in b's text.
//
// Names are searched left to right; after a match at position p the search
// for the same name resumes at p+1, so overlapping occurrences are all
// reported. Each occurrence carries b.StartLine as its line offset.
func Scan(b batch.Batch, names NameSet) MatchResult {
	res, _ := scanBatch(context.Background(), b, names)
	return res
}

// scanBatch is the default ScanFunc. It checks ctx between names so an
// abandoned task stops early.
func scanBatch(ctx context.Context, b batch.Batch, names NameSet) (MatchResult, error) {
	res := MatchResult{
		BatchID:   b.ID,
		Positions: make(map[string][]Occurrence, names.Len()),
	}

	for _, name := range names.names {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, err
		}
		res.Positions[name] = findAll(b.Text, name, b.StartLine)
	}

	return res, nil
}

func findAll(text, name string, lineOffset int) []Occurrence {
	occ := []Occurrence{}
	if name == "" {
		return occ
	}

	from := 0
	for {
		i := strings.Index(text[from:], name)
		if i < 0 {
			return occ
		}
		p := from + i
		occ = append(occ, Occurrence{LineOffset: lineOffset, CharOffset: p})
		from = p + 1
	}
}
