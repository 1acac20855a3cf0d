package engine

import (
	"slices"
	"strings"
)

// Occurrence locates one match of a name.
//
// LineOffset is the index of the first line of the batch the match was
// found in. CharOffset is the byte index of the match within that batch's
// concatenated text, not within a single physical line.
type Occurrence struct {
	LineOffset int `json:"line_offset"`
	CharOffset int `json:"char_offset"`
}

// NameSet is an immutable ordered list of distinct, non-empty target names.
// The zero value is an empty set.
type NameSet struct {
	names []string
}

// NewNameSet builds a NameSet preserving the given order.
func NewNameSet(names ...string) (NameSet, error) {
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return NameSet{}, invalidArgument("name at index %d is empty", i)
		}
		if _, dup := seen[n]; dup {
			return NameSet{}, invalidArgument("duplicate name %q", n)
		}
		seen[n] = struct{}{}
	}
	return NameSet{names: slices.Clone(names)}, nil
}

// MustNameSet is like NewNameSet but panics on invalid input.
func MustNameSet(names ...string) NameSet {
	s, err := NewNameSet(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns a copy of the names in order.
func (s NameSet) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of names.
func (s NameSet) Len() int {
	return len(s.names)
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

// MatchResult holds the occurrences found in a single batch, keyed by name.
// Every name of the scanned NameSet is present, possibly with no
// occurrences.
type MatchResult struct {
	BatchID   int
	Positions map[string][]Occurrence
}

// emptyResult returns a result for batchID listing every name with no
// occurrences.
func emptyResult(batchID int, names NameSet) MatchResult {
	res := MatchResult{
		BatchID:   batchID,
		Positions: make(map[string][]Occurrence, names.Len()),
	}
	for _, n := range names.names {
		res.Positions[n] = []Occurrence{}
	}
	return res
}

// AggregatedResult is the corpus-wide merge of all batch results.
type AggregatedResult struct {
	// Names is the NameSet that was searched, in report order.
	Names NameSet

	// Positions maps every name to its occurrences ordered by batch id, then
	// by scan order within the batch.
	Positions map[string][]Occurrence

	// MergedBatches is the number of batch results merged.
	MergedBatches int

	// TotalBatches is the number of batches the corpus was split into.
	TotalBatches int

	// Incomplete is set when some batches never finished; Reason says why.
	Incomplete bool
	Reason     string

	// Warnings lists per-batch scan failures.
	Warnings []error
}

// Occurrences returns the occurrences of name.
func (r AggregatedResult) Occurrences(name string) []Occurrence {
	return r.Positions[name]
}

// Total returns the number of occurrences across all names.
func (r AggregatedResult) Total() int {
	total := 0
	for _, occ := range r.Positions {
		total += len(occ)
	}
	return total
}
