package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/engine/batch"
)

// RunFunc performs a scan, reporting progress through onProgress.
type RunFunc func(ctx context.Context, onProgress engine.ProgressFunc) (engine.AggregatedResult, error)

// ErrAborted is returned by Run when the user quits before the scan ends.
var ErrAborted = errors.New("scan aborted by user")

// Run starts the results browser, runs runFn in the background and feeds
// its progress and result into the program. It returns runFn's result once
// the user quits. Quitting while the scan is still running cancels it and
// returns ErrAborted.
func Run(ctx context.Context, runFn RunFunc, opts ...tea.ProgramOption) (engine.AggregatedResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model, _ := NewResultsModel(ctx)
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	type outcome struct {
		result engine.AggregatedResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		res, err := runFn(ctx, func(s batch.ProgressSnapshot) {
			p.Send(BatchProgressMsg{
				Completed: s.CompletedBatches,
				Failed:    s.FailedBatches,
				Total:     s.TotalBatches,
			})
		})
		done <- outcome{result: res, err: err}
		p.Send(ResultsLoadedMsg{Result: res, Err: err})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return engine.AggregatedResult{}, fmt.Errorf("running results browser: %w", err)
	}

	select {
	case out := <-done:
		return out.result, out.err
	default:
		cancel()
		return engine.AggregatedResult{}, ErrAborted
	}
}
