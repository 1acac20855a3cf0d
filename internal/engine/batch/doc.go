// Package batch partitions a line-oriented corpus into fixed-size batches.
//
// Each Batch remembers the zero-based index of its first line so that
// matches found inside a batch can be reported against the whole corpus.
// Batch ids start at 1 and are contiguous. Key features:
//   - Configurable batch size (default 1000 lines per batch)
//   - Line ranges computable without materialising batches
//   - Thread-safe progress tracking for concurrent consumers
package batch
