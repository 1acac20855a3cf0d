package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/namesearch/internal/engine/batch"
	"github.com/rshade/namesearch/internal/logging"
)

// LineSource yields a corpus as ordered lines without terminators.
type LineSource interface {
	Lines(ctx context.Context) ([]string, error)
}

// Options configures an Engine.
type Options struct {
	// BatchSize is the number of lines per batch; must be > 0.
	BatchSize int

	// Workers bounds concurrent batch scans; <= 0 selects runtime.NumCPU().
	Workers int

	// Timeout is the overall scan deadline; 0 disables it.
	Timeout time.Duration

	// Names is the fixed set of names searched for; must not be empty.
	Names NameSet

	// OnProgress, if set, is called after every finished batch.
	OnProgress ProgressFunc

	// Scan replaces the default matcher when set.
	Scan ScanFunc
}

// Engine runs the read, partition, scan and merge pipeline.
type Engine struct {
	opts      Options
	scheduler *Scheduler
}

// New validates opts and creates an Engine.
func New(opts Options) (*Engine, error) {
	if opts.BatchSize <= 0 {
		return nil, invalidArgument("batch size must be greater than 0, got %d", opts.BatchSize)
	}
	if opts.Timeout < 0 {
		return nil, invalidArgument("timeout must not be negative, got %s", opts.Timeout)
	}
	if opts.Names.Len() == 0 {
		return nil, invalidArgument("name set is empty")
	}

	return &Engine{
		opts: opts,
		scheduler: NewScheduler(
			WithWorkers(opts.Workers),
			WithProgress(opts.OnProgress),
			WithScanFunc(opts.Scan),
		),
	}, nil
}

// Run reads all lines from src and scans them. Source failures abort the
// run with an error wrapping ErrSourceUnavailable and no result.
func (e *Engine) Run(ctx context.Context, src LineSource) (AggregatedResult, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		logging.FromContext(ctx).Error().
			Str("operation", "read_source").
			Err(err).
			Msg("failed to read source")
		return AggregatedResult{}, err
	}

	return e.ScanLines(ctx, lines)
}

// ScanLines partitions lines and scans every batch.
//
// A timeout or cancellation returns the partial result together with the
// error; the result is marked Incomplete. Failed batches never produce an
// error here, they are listed in the result's Warnings.
func (e *Engine) ScanLines(ctx context.Context, lines []string) (AggregatedResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	batches, err := batch.Partition(lines, e.opts.BatchSize)
	if err != nil {
		return AggregatedResult{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	log.Info().
		Str("operation", "scan").
		Int("lines", len(lines)).
		Int("batches", len(batches)).
		Int("names", e.opts.Names.Len()).
		Msg("scan started")

	outcome, runErr := e.scheduler.Run(ctx, batches, e.opts.Names, e.opts.Timeout)

	result := Merge(e.opts.Names, outcome.Results)
	result.TotalBatches = len(batches)
	for _, se := range outcome.ScanErrors {
		result.Warnings = append(result.Warnings, se)
	}
	if runErr != nil {
		result.Incomplete = true
		result.Reason = runErr.Error()
	}

	log.Info().
		Str("operation", "scan").
		Int("merged_batches", result.MergedBatches).
		Int("total_batches", result.TotalBatches).
		Int("occurrences", result.Total()).
		Int("scan_errors", len(outcome.ScanErrors)).
		Bool("incomplete", result.Incomplete).
		Dur("duration", time.Since(start)).
		Msg("scan finished")

	return result, runErr
}
