package engine

import (
	"errors"
	"fmt"
	"time"
)

// Error categories. Use errors.Is to classify any error returned by this
// package.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrScan              = errors.New("scan failed")
	ErrTimeout           = errors.New("scan deadline exceeded")
)

// ScanError reports a single batch whose scan failed. The batch contributes
// an empty result; other batches are unaffected.
type ScanError struct {
	BatchID int
	Err     error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("batch %d: %v: %v", e.BatchID, ErrScan, e.Err)
}

// Unwrap exposes both the ErrScan category and the underlying cause.
func (e *ScanError) Unwrap() []error {
	return []error{ErrScan, e.Err}
}

// TimeoutError reports that the run deadline passed before every batch
// finished. Results of the completed batches are still returned.
type TimeoutError struct {
	Timeout   time.Duration
	Completed int
	Total     int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v after %s: %d of %d batches completed",
		ErrTimeout, e.Timeout, e.Completed, e.Total)
}

// Is makes errors.Is(err, ErrTimeout) hold for any *TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
