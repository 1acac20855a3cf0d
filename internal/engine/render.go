package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat selects how an AggregatedResult is rendered.
type OutputFormat string

// Supported output formats. OutputTUI is rendered by package tui.
const (
	OutputText   OutputFormat = "text"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
	OutputTUI    OutputFormat = "tui"
)

// SupportedOutputFormats lists every valid OutputFormat.
func SupportedOutputFormats() []OutputFormat {
	return []OutputFormat{OutputText, OutputJSON, OutputNDJSON, OutputTUI}
}

// ParseOutputFormat parses s case-insensitively. Empty selects text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON, OutputNDJSON, OutputTUI:
		return f, nil
	default:
		return "", invalidArgument("unknown output format %q", s)
	}
}

// RenderFormat writes r to w in format f.
func RenderFormat(w io.Writer, r AggregatedResult, f OutputFormat) error {
	switch f {
	case OutputText, "":
		return Render(w, r)
	case OutputJSON:
		return RenderJSON(w, r)
	case OutputNDJSON:
		return RenderNDJSON(w, r)
	default:
		return invalidArgument("output format %q cannot be written to a stream", f)
	}
}

// Render writes the text report: one line per name in NameSet order,
//
//	James --> [[lineOffset=0, charOffset=0], [lineOffset=0, charOffset=27]]
//
// followed by a WARNING line for an incomplete run and for every scan error.
func Render(w io.Writer, r AggregatedResult) error {
	bw := bufio.NewWriter(w)

	for _, name := range r.Names.names {
		bw.WriteString(name)
		bw.WriteString(" --> [")
		for i, o := range r.Occurrences(name) {
			if i > 0 {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "[lineOffset=%d, charOffset=%d]", o.LineOffset, o.CharOffset)
		}
		bw.WriteString("]\n")
	}

	if r.Incomplete {
		fmt.Fprintf(bw, "WARNING: run incomplete: %s\n", r.Reason)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(bw, "WARNING: %v\n", warn)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

type jsonName struct {
	Name        string       `json:"name"`
	Occurrences []Occurrence `json:"occurrences"`
}

type jsonReport struct {
	Complete      bool       `json:"complete"`
	Reason        string     `json:"reason,omitempty"`
	MergedBatches int        `json:"merged_batches"`
	TotalBatches  int        `json:"total_batches"`
	Names         []jsonName `json:"names"`
	Warnings      []string   `json:"warnings,omitempty"`
}

func warningStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func jsonNames(r AggregatedResult) []jsonName {
	names := make([]jsonName, 0, r.Names.Len())
	for _, name := range r.Names.names {
		occ := r.Occurrences(name)
		if occ == nil {
			occ = []Occurrence{}
		}
		names = append(names, jsonName{Name: name, Occurrences: occ})
	}
	return names
}

// RenderJSON writes r as a single indented JSON document.
func RenderJSON(w io.Writer, r AggregatedResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{
		Complete:      !r.Incomplete,
		Reason:        r.Reason,
		MergedBatches: r.MergedBatches,
		TotalBatches:  r.TotalBatches,
		Names:         jsonNames(r),
		Warnings:      warningStrings(r.Warnings),
	}); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// RenderNDJSON writes one JSON object per name, then one {"warning": ...}
// object per warning and, for an incomplete run, a final
// {"incomplete": true, "reason": ...} object.
func RenderNDJSON(w io.Writer, r AggregatedResult) error {
	enc := json.NewEncoder(w)

	for _, n := range jsonNames(r) {
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encoding ndjson line: %w", err)
		}
	}
	for _, warn := range warningStrings(r.Warnings) {
		if err := enc.Encode(map[string]string{"warning": warn}); err != nil {
			return fmt.Errorf("encoding ndjson warning: %w", err)
		}
	}
	if r.Incomplete {
		if err := enc.Encode(struct {
			Incomplete bool   `json:"incomplete"`
			Reason     string `json:"reason"`
		}{true, r.Reason}); err != nil {
			return fmt.Errorf("encoding ndjson trailer: %w", err)
		}
	}
	return nil
}
