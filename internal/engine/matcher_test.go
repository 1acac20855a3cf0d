package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/namesearch/internal/engine/batch"
)

func TestScan_SingleNamePositions(t *testing.T) {
	names := MustNameSet("James", "John", "Robert")
	text := "xyzJohn" + "..." + "John" + "......" + "John"
	b := batch.Batch{ID: 1, StartLine: 0, LineCount: 1, Text: text}

	res := Scan(b, names)

	require.Len(t, res.Positions, 3)
	assert.Equal(t, []Occurrence{
		{LineOffset: 0, CharOffset: 3},
		{LineOffset: 0, CharOffset: 10},
		{LineOffset: 0, CharOffset: 20},
	}, res.Positions["John"])
	assert.Empty(t, res.Positions["James"])
	assert.Empty(t, res.Positions["Robert"])
	assert.Contains(t, res.Positions, "James")
	assert.Contains(t, res.Positions, "Robert")
}

func TestScan_Overlapping(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		names []string
		want  map[string][]int
	}{
		{
			name:  "same name overlaps itself",
			text:  "bananana",
			names: []string{"anana"},
			want:  map[string][]int{"anana": {1, 3}},
		},
		{
			name:  "repeated letters",
			text:  "aaaa",
			names: []string{"aa"},
			want:  map[string][]int{"aa": {0, 1, 2}},
		},
		{
			name:  "different names overlap",
			text:  "Johnathan Jo",
			names: []string{"John", "Jo", "nat"},
			want:  map[string][]int{"John": {0}, "Jo": {0, 10}, "nat": {3}},
		},
		{
			name:  "case sensitive",
			text:  "JOHN john John",
			names: []string{"John"},
			want:  map[string][]int{"John": {10}},
		},
		{
			name:  "empty text",
			text:  "",
			names: []string{"John"},
			want:  map[string][]int{"John": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(batch.Batch{ID: 3, StartLine: 40, Text: tt.text}, MustNameSet(tt.names...))
			for name, offsets := range tt.want {
				got := make([]int, 0, len(res.Positions[name]))
				for _, o := range res.Positions[name] {
					assert.Equal(t, 40, o.LineOffset)
					got = append(got, o.CharOffset)
				}
				assert.Equal(t, offsets, got, name)
			}
		})
	}
}

func TestScan_LineOffsetConstantPerBatch(t *testing.T) {
	names := MustNameSet("James", "John", "Robert", "Michael")
	b := batch.Batch{ID: 4, StartLine: 3000, Text: "Michael met Robert, John and James. John left."}

	res := Scan(b, names)
	for _, name := range names.Names() {
		for _, o := range res.Positions[name] {
			assert.Equal(t, 3000, o.LineOffset, name)
		}
	}
	assert.Len(t, res.Positions["John"], 2)
}

func TestScan_Idempotent(t *testing.T) {
	names := MustNameSet("James", "John", "Robert")
	b := batch.Batch{ID: 1, StartLine: 0, Text: "James went homeJohn and James met"}

	first := Scan(b, names)
	second := Scan(b, names)
	assert.Equal(t, first, second)
}

func TestNewNameSet(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{name: "valid", names: []string{"James", "John"}},
		{name: "empty set", names: nil},
		{name: "blank name", names: []string{"James", " "}, wantErr: true},
		{name: "duplicate", names: []string{"John", "John"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewNameSet(tt.names...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.names), s.Len())
		})
	}
}

func TestNameSet_NamesIsCopy(t *testing.T) {
	s := MustNameSet("James", "John")
	got := s.Names()
	got[0] = "Mallory"
	assert.Equal(t, []string{"James", "John"}, s.Names())
	assert.True(t, s.Contains("John"))
	assert.False(t, s.Contains("Mallory"))
}
