package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanError(t *testing.T) {
	cause := errors.New("boom")
	var err error = &ScanError{BatchID: 7, Err: cause}

	assert.ErrorIs(t, err, ErrScan)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "batch 7: scan failed: boom", err.Error())

	var se *ScanError
	wrapped := fmt.Errorf("run: %w", err)
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, 7, se.BatchID)
}

func TestTimeoutError(t *testing.T) {
	err := fmt.Errorf("scanning: %w", &TimeoutError{Timeout: time.Second, Completed: 2, Total: 5})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrScan)
	assert.Contains(t, err.Error(), "2 of 5 batches completed")
}

func TestInvalidArgument(t *testing.T) {
	err := invalidArgument("batch size must be greater than 0, got %d", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "invalid argument: batch size must be greater than 0, got -1", err.Error())
}

func TestAggregatedResult_Total(t *testing.T) {
	r := AggregatedResult{
		Names: MustNameSet("James", "John"),
		Positions: map[string][]Occurrence{
			"James": {{0, 0}, {0, 24}},
			"John":  {{0, 15}},
		},
	}

	assert.Equal(t, 3, r.Total())
	assert.Len(t, r.Occurrences("James"), 2)
	assert.Nil(t, r.Occurrences("Robert"))
}

func TestEmptyResult(t *testing.T) {
	res := emptyResult(4, MustNameSet("James", "John"))
	assert.Equal(t, 4, res.BatchID)
	for _, n := range []string{"James", "John"} {
		occ, ok := res.Positions[n]
		assert.True(t, ok)
		assert.NotNil(t, occ)
		assert.Empty(t, occ)
	}
}
