package batch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d;", i)
	}
	return lines
}

func TestNewBatcher(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default size", size: DefaultBatchSize},
		{name: "single line batches", size: 1},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBatcher(tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBatchSize)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, b.BatchCount(tt.size))
			assert.Equal(t, 2, b.BatchCount(tt.size+1))
		})
	}
}

func TestPartition_BatchCounts(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 10, 1000} {
		for _, n := range []int{0, 1, 2, 9, 10, 11, 25, 1001} {
			t.Run(fmt.Sprintf("size_%d_lines_%d", size, n), func(t *testing.T) {
				lines := makeLines(n)
				batches, err := Partition(lines, size)
				require.NoError(t, err)

				want := (n + size - 1) / size
				require.Len(t, batches, want)

				total := 0
				for i, b := range batches {
					assert.Equal(t, i+1, b.ID)
					assert.Equal(t, i*size, b.StartLine)
					if i < len(batches)-1 {
						assert.Equal(t, size, b.LineCount)
					} else {
						assert.LessOrEqual(t, b.LineCount, size)
						assert.Positive(t, b.LineCount)
					}
					assert.Equal(t, strings.Join(lines[b.StartLine:b.StartLine+b.LineCount], ""), b.Text)
					total += b.LineCount
				}
				assert.Equal(t, n, total)
			})
		}
	}
}

func TestPartition_Scenario(t *testing.T) {
	lines := []string{"James went home", "John and James met", "Robert called John"}

	batches, err := Partition(lines, 2)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	assert.Equal(t, Batch{ID: 1, StartLine: 0, LineCount: 2, Text: "James went homeJohn and James met"}, batches[0])
	assert.Equal(t, Batch{ID: 2, StartLine: 2, LineCount: 1, Text: "Robert called John"}, batches[1])
}

func TestPartition_InvalidSize(t *testing.T) {
	_, err := Partition([]string{"a"}, 0)
	require.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestBatcher_CalculateBatches(t *testing.T) {
	b, err := NewBatcher(10)
	require.NoError(t, err)

	ranges := b.CalculateBatches(25)
	require.Len(t, ranges, 3)
	assert.Equal(t, [2]int{0, 10}, ranges[0])
	assert.Equal(t, [2]int{10, 20}, ranges[1])
	assert.Equal(t, [2]int{20, 25}, ranges[2])
	assert.Empty(t, b.CalculateBatches(0))
}
