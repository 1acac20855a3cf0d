// Package engine implements the name scanning pipeline.
//
// A run reads a corpus from a LineSource, partitions it into fixed-size
// batches (package batch), scans every batch for each name of a NameSet on a
// bounded worker pool, and merges the per-batch results into one
// AggregatedResult ordered by batch id.
//
// Scanning is lock free: every task fills its own MatchResult and hands it
// to the scheduler once finished. Merging happens on a single goroutine
// after all tasks have joined or the run deadline has passed.
//
// Failure handling:
//   - invalid configuration aborts before any scanning (ErrInvalidArgument)
//   - an unreadable source aborts the run (ErrSourceUnavailable)
//   - a failing batch is isolated and reported as a *ScanError warning
//   - an expired deadline yields partial results plus a *TimeoutError
package engine
