package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// Progress tracks how many batches of a run have finished scanning.
// All methods are safe for concurrent use by scan workers.
type Progress struct {
	mu sync.RWMutex

	totalLines     int
	totalBatches   int
	completedLines int
	completed      int
	failed         int
	startTime      time.Time
	lastUpdate     time.Time
}

// NewProgress creates a tracker for a run over totalLines lines split
// into totalBatches batches.
func NewProgress(totalLines, totalBatches int) *Progress {
	now := time.Now()
	return &Progress{
		totalLines:   totalLines,
		totalBatches: totalBatches,
		startTime:    now,
		lastUpdate:   now,
	}
}

// AddCompleted records one finished batch holding lines lines.
func (p *Progress) AddCompleted(lines int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completedLines += lines
	p.completed++
	p.lastUpdate = time.Now()
}

// AddFailed records one batch whose scan failed. Failed batches count
// towards completion because they will not be retried.
func (p *Progress) AddFailed(lines int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completedLines += lines
	p.completed++
	p.failed++
	p.lastUpdate = time.Now()
}

// Snapshot returns a consistent copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalLines:       p.totalLines,
		TotalBatches:     p.totalBatches,
		CompletedLines:   p.completedLines,
		CompletedBatches: p.completed,
		FailedBatches:    p.failed,
		PercentComplete:  p.percentLocked(),
		Elapsed:          time.Since(p.startTime),
		LastUpdate:       p.lastUpdate,
		LinesPerSecond:   p.linesPerSecondLocked(),
	}
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalLines       int
	TotalBatches     int
	CompletedLines   int
	CompletedBatches int
	FailedBatches    int
	PercentComplete  float64
	Elapsed          time.Duration
	LastUpdate       time.Time
	LinesPerSecond   float64
}

// percentLocked must be called with mu held.
func (p *Progress) percentLocked() float64 {
	if p.totalBatches == 0 {
		return percentMultiplier
	}
	return float64(p.completed) / float64(p.totalBatches) * percentMultiplier
}

// linesPerSecondLocked must be called with mu held.
func (p *Progress) linesPerSecondLocked() float64 {
	elapsed := time.Since(p.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(p.completedLines) / elapsed
}
