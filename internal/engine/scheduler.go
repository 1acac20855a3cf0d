package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/namesearch/internal/engine/batch"
	"github.com/rshade/namesearch/internal/logging"
)

// DefaultTimeout is the overall deadline for scanning all batches.
const DefaultTimeout = 5 * time.Minute

// ProgressFunc receives a snapshot each time a batch finishes. Calls are
// serialized and never made after Run has returned.
type ProgressFunc func(batch.ProgressSnapshot)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithWorkers bounds the number of batches scanned at once. Values <= 0
// select runtime.NumCPU().
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.workers = n
	}
}

// WithProgress registers a callback invoked after every finished batch.
func WithProgress(fn ProgressFunc) SchedulerOption {
	return func(s *Scheduler) {
		s.onProgress = fn
	}
}

// WithScanFunc replaces the default matcher.
func WithScanFunc(fn ScanFunc) SchedulerOption {
	return func(s *Scheduler) {
		if fn != nil {
			s.scan = fn
		}
	}
}

// Scheduler runs one scan task per batch on a bounded worker pool.
type Scheduler struct {
	workers    int
	scan       ScanFunc
	onProgress ProgressFunc
}

// NewScheduler creates a Scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{scan: scanBatch}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Outcome is what a scheduler run produced.
type Outcome struct {
	// Results holds one entry per finished batch, ordered by batch id.
	// Batches whose scan failed contribute an empty result.
	Results []MatchResult

	// ScanErrors lists failed batches ordered by batch id.
	ScanErrors []*ScanError

	// Completed is len(Results); Total is the number of batches submitted.
	Completed int
	Total     int
}

// taskResult is handed from a worker to Run once a batch is done.
type taskResult struct {
	result MatchResult
	err    *ScanError
}

// WorkerBudget returns the pool size used for batchCount batches.
func (s *Scheduler) WorkerBudget(batchCount int) int {
	w := s.workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	return max(1, min(w, batchCount))
}

// Run scans every batch and waits for all of them or for timeout to elapse.
// A timeout <= 0 disables the deadline.
//
// When the deadline passes first, Run returns immediately with the results
// of the batches that finished and a *TimeoutError. Tasks still running are
// abandoned: their context is cancelled and anything they produce later is
// discarded. Cancelling ctx behaves the same way but returns ctx's error.
func (s *Scheduler) Run(
	ctx context.Context,
	batches []batch.Batch,
	names NameSet,
	timeout time.Duration,
) (Outcome, error) {
	log := logging.FromContext(ctx)
	total := len(batches)
	if total == 0 {
		return Outcome{}, nil
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	totalLines := 0
	for _, b := range batches {
		totalLines += b.LineCount
	}
	progress := batch.NewProgress(totalLines, total)
	workers := s.WorkerBudget(total)

	log.Debug().
		Str("operation", "schedule").
		Int("batches", total).
		Int("workers", workers).
		Dur("timeout", timeout).
		Msg("dispatching scan tasks")

	// Buffered so late workers never block after Run has returned.
	finished := make(chan taskResult, total)

	// closed is set under progressMu once Run stops listening; workers
	// finishing later skip the callback.
	var (
		progressMu sync.Mutex
		closed     bool
	)
	reportProgress := func() {
		progressMu.Lock()
		defer progressMu.Unlock()
		if !closed {
			s.onProgress(progress.Snapshot())
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		var g errgroup.Group
		g.SetLimit(workers)

		for _, b := range batches {
			if runCtx.Err() != nil {
				break
			}
			b := b // per-iteration copy; go.mod targets Go 1.21 loop semantics
			g.Go(func() error {
				tr, ok := s.runTask(runCtx, b, names)
				if !ok {
					return nil
				}
				if tr.err != nil {
					progress.AddFailed(b.LineCount)
				} else {
					progress.AddCompleted(b.LineCount)
				}
				finished <- tr
				if s.onProgress != nil {
					reportProgress()
				}
				return nil
			})
		}

		_ = g.Wait()
	}()

	select {
	case <-done:
	case <-runCtx.Done():
	}
	progressMu.Lock()
	closed = true
	progressMu.Unlock()

	out := collect(finished, total)

	if out.Completed == total {
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		log.Warn().
			Str("operation", "schedule").
			Int("completed", out.Completed).
			Int("total", total).
			Err(err).
			Msg("scan cancelled")
		return out, fmt.Errorf("scan cancelled after %d of %d batches: %w", out.Completed, total, err)
	}

	log.Warn().
		Str("operation", "schedule").
		Int("completed", out.Completed).
		Int("total", total).
		Dur("timeout", timeout).
		Msg("scan deadline exceeded, returning partial results")

	return out, &TimeoutError{Timeout: timeout, Completed: out.Completed, Total: total}
}

// runTask scans b, converting failures and panics into a *ScanError.
// It reports ok=false when the task was abandoned because ctx is done.
func (s *Scheduler) runTask(ctx context.Context, b batch.Batch, names NameSet) (taskResult, bool) {
	if ctx.Err() != nil {
		return taskResult{}, false
	}

	res, err := s.safeScan(ctx, b, names)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return taskResult{}, false
		}

		logging.FromContext(ctx).Warn().
			Str("operation", "scan").
			Int("batch_id", b.ID).
			Err(err).
			Msg("batch scan failed, recording empty result")

		return taskResult{
			result: emptyResult(b.ID, names),
			err:    &ScanError{BatchID: b.ID, Err: err},
		}, true
	}

	res.BatchID = b.ID
	return taskResult{result: res}, true
}

func (s *Scheduler) safeScan(ctx context.Context, b batch.Batch, names NameSet) (res MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.scan(ctx, b, names)
}

// collect drains whatever has been delivered to finished without waiting.
func collect(finished <-chan taskResult, total int) Outcome {
	out := Outcome{Total: total}

	for {
		select {
		case tr := <-finished:
			out.Results = append(out.Results, tr.result)
			if tr.err != nil {
				out.ScanErrors = append(out.ScanErrors, tr.err)
			}
		default:
			sort.Slice(out.Results, func(i, j int) bool {
				return out.Results[i].BatchID < out.Results[j].BatchID
			})
			sort.Slice(out.ScanErrors, func(i, j int) bool {
				return out.ScanErrors[i].BatchID < out.ScanErrors[j].BatchID
			})
			out.Completed = len(out.Results)
			return out
		}
	}
}
