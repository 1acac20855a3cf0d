package batch

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultBatchSize is the default number of lines per batch.
const DefaultBatchSize = 1000

// ErrInvalidBatchSize is returned when a batch size is not positive.
var ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

// Batch is a contiguous group of input lines scanned as one unit.
type Batch struct {
	// ID is the 1-based position of the batch in the corpus.
	ID int

	// StartLine is the 0-based index of the batch's first line.
	StartLine int

	// LineCount is the number of lines joined into Text.
	LineCount int

	// Text is the batch's lines concatenated without separators.
	Text string
}

// Batcher groups lines into batches of a fixed size.
type Batcher struct {
	size int
}

// NewBatcher creates a Batcher producing batches of size lines.
func NewBatcher(size int) (*Batcher, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return &Batcher{size: size}, nil
}

// Partition splits lines into batches. Every batch holds exactly size lines
// except possibly the last one. An empty input yields no batches.
func (b *Batcher) Partition(lines []string) []Batch {
	ranges := b.CalculateBatches(len(lines))
	batches := make([]Batch, 0, len(ranges))

	for i, r := range ranges {
		batches = append(batches, Batch{
			ID:        i + 1,
			StartLine: r[0],
			LineCount: r[1] - r[0],
			Text:      strings.Join(lines[r[0]:r[1]], ""),
		})
	}

	return batches
}

// CalculateBatches returns the [start, end) line range of every batch for
// a corpus of totalLines lines.
func (b *Batcher) CalculateBatches(totalLines int) [][2]int {
	count := b.BatchCount(totalLines)
	ranges := make([][2]int, count)

	for i := 0; i < count; i++ {
		start := i * b.size
		ranges[i] = [2]int{start, min(start+b.size, totalLines)}
	}

	return ranges
}

// BatchCount returns ceil(totalLines / Size).
func (b *Batcher) BatchCount(totalLines int) int {
	if totalLines <= 0 {
		return 0
	}
	return (totalLines + b.size - 1) / b.size
}

// Partition is a convenience wrapper around NewBatcher and Batcher.Partition.
func Partition(lines []string, batchSize int) ([]Batch, error) {
	b, err := NewBatcher(batchSize)
	if err != nil {
		return nil, err
	}
	return b.Partition(lines), nil
}
