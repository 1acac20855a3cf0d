package engine

import (
	"slices"
	"sort"
)

// Merge combines per-batch results into one AggregatedResult.
//
// Results are replayed in ascending batch id order regardless of the order
// they are passed in, so the output does not depend on which task finished
// first. Every name of names appears in the result, and names a result
// carries that are not in names are ignored.
func Merge(names NameSet, results []MatchResult) AggregatedResult {
	ordered := slices.Clone(results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BatchID < ordered[j].BatchID
	})

	positions := make(map[string][]Occurrence, names.Len())
	for _, name := range names.names {
		merged := []Occurrence{}
		for _, r := range ordered {
			merged = append(merged, r.Positions[name]...)
		}
		positions[name] = merged
	}

	return AggregatedResult{
		Names:         names,
		Positions:     positions,
		MergedBatches: len(ordered),
		TotalBatches:  len(ordered),
	}
}

// NameCount summarises the occurrences of one name.
type NameCount struct {
	Name  string
	Count int

	// First is the earliest occurrence, nil when Count is 0.
	First *Occurrence
}

// Summarize returns one NameCount per name in NameSet order.
func Summarize(r AggregatedResult) []NameCount {
	out := make([]NameCount, 0, r.Names.Len())
	for _, name := range r.Names.names {
		occ := r.Occurrences(name)
		nc := NameCount{Name: name, Count: len(occ)}
		if len(occ) > 0 {
			first := occ[0]
			nc.First = &first
		}
		out = append(out, nc)
	}
	return out
}
