package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/namesearch/internal/engine/batch"
)

func TestMerge_OrderPreserving(t *testing.T) {
	names := MustNameSet("James", "John")
	b1 := MatchResult{BatchID: 1, Positions: map[string][]Occurrence{
		"James": {{0, 5}},
		"John":  {{0, 1}, {0, 9}},
	}}
	b2 := MatchResult{BatchID: 2, Positions: map[string][]Occurrence{
		"James": {{10, 0}},
		"John":  {},
	}}

	forward := Merge(names, []MatchResult{b1, b2})
	reversed := Merge(names, []MatchResult{b2, b1})

	assert.Equal(t, forward, reversed)
	assert.Equal(t, []Occurrence{{0, 5}, {10, 0}}, forward.Positions["James"])
	assert.Equal(t, []Occurrence{{0, 1}, {0, 9}}, forward.Positions["John"])
	assert.Equal(t, 2, forward.MergedBatches)
}

func TestMerge_EveryNamePresent(t *testing.T) {
	names := MustNameSet("James", "John", "Roger")

	res := Merge(names, []MatchResult{{BatchID: 1, Positions: map[string][]Occurrence{
		"John":    {{0, 3}},
		"Mallory": {{0, 7}},
	}}})

	require.Len(t, res.Positions, 3)
	for _, n := range names.Names() {
		assert.Contains(t, res.Positions, n)
		assert.NotNil(t, res.Positions[n])
	}
	assert.NotContains(t, res.Positions, "Mallory")

	empty := Merge(names, nil)
	assert.Len(t, empty.Positions, 3)
	assert.Equal(t, 0, empty.Total())
}

func TestScenario_ThreeLines(t *testing.T) {
	names := MustNameSet("James", "John", "Robert")
	lines := []string{"James went home", "John and James met", "Robert called John"}

	batches, err := batch.Partition(lines, 2)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	r1 := Scan(batches[0], names)
	assert.Equal(t, []Occurrence{{0, 0}, {0, 24}}, r1.Positions["James"])
	assert.Equal(t, []Occurrence{{0, 15}}, r1.Positions["John"])
	assert.Empty(t, r1.Positions["Robert"])

	r2 := Scan(batches[1], names)
	assert.Equal(t, []Occurrence{{2, 0}}, r2.Positions["Robert"])
	assert.Equal(t, []Occurrence{{2, 14}}, r2.Positions["John"])

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Merge(names, []MatchResult{r2, r1})))

	assert.Equal(t,
		"James --> [[lineOffset=0, charOffset=0], [lineOffset=0, charOffset=24]]\n"+
			"John --> [[lineOffset=0, charOffset=15], [lineOffset=2, charOffset=14]]\n"+
			"Robert --> [[lineOffset=2, charOffset=0]]\n",
		buf.String())
}

func TestRender_IncompleteAndWarnings(t *testing.T) {
	names := MustNameSet("James", "Roger")
	r := Merge(names, []MatchResult{{BatchID: 1, Positions: map[string][]Occurrence{"James": {{0, 1}}}}})
	r.Incomplete = true
	r.Reason = "scan deadline exceeded"
	r.Warnings = []error{&ScanError{BatchID: 2, Err: errors.New("boom")}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "James --> [[lineOffset=0, charOffset=1]]", lines[0])
	assert.Equal(t, "Roger --> []", lines[1])
	assert.Equal(t, "WARNING: run incomplete: scan deadline exceeded", lines[2])
	assert.Equal(t, "WARNING: batch 2: scan failed: boom", lines[3])
}

func TestRenderJSON(t *testing.T) {
	names := MustNameSet("James", "Roger")
	r := Merge(names, []MatchResult{{BatchID: 1, Positions: map[string][]Occurrence{"James": {{0, 1}}}}})

	var buf bytes.Buffer
	require.NoError(t, RenderFormat(&buf, r, OutputJSON))

	var got struct {
		Complete bool `json:"complete"`
		Names    []struct {
			Name        string       `json:"name"`
			Occurrences []Occurrence `json:"occurrences"`
		} `json:"names"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.Complete)
	require.Len(t, got.Names, 2)
	assert.Equal(t, "James", got.Names[0].Name)
	assert.Equal(t, []Occurrence{{0, 1}}, got.Names[0].Occurrences)
	assert.Empty(t, got.Names[1].Occurrences)
	assert.Contains(t, buf.String(), `"occurrences": []`)
}

func TestRenderNDJSON(t *testing.T) {
	names := MustNameSet("James", "Roger")
	r := Merge(names, nil)
	r.Incomplete = true
	r.Reason = "deadline"

	var buf bytes.Buffer
	require.NoError(t, RenderFormat(&buf, r, OutputNDJSON))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"name":"James","occurrences":[]}`, lines[0])
	assert.JSONEq(t, `{"incomplete":true,"reason":"deadline"}`, lines[2])
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: OutputText},
		{in: "TEXT", want: OutputText},
		{in: "json", want: OutputJSON},
		{in: "ndjson", want: OutputNDJSON},
		{in: "tui", want: OutputTUI},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	require.ErrorIs(t, RenderFormat(&bytes.Buffer{}, AggregatedResult{}, OutputTUI), ErrInvalidArgument)
}

func TestSummarize(t *testing.T) {
	names := MustNameSet("James", "John")
	r := Merge(names, []MatchResult{{BatchID: 1, Positions: map[string][]Occurrence{"John": {{0, 4}, {0, 9}}}}})

	sum := Summarize(r)
	require.Len(t, sum, 2)
	assert.Equal(t, NameCount{Name: "James"}, sum[0])
	assert.Equal(t, "John", sum[1].Name)
	assert.Equal(t, 2, sum[1].Count)
	require.NotNil(t, sum[1].First)
	assert.Equal(t, Occurrence{0, 4}, *sum[1].First)
}
