package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/namesearch/internal/engine"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitInvalidArgument   = 2
	ExitSourceUnavailable = 3
	ExitTimeout           = 4
)

// ExitError carries an explicit exit code for main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code. An *ExitError anywhere in the
// chain wins; otherwise the engine error category decides.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, engine.ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, engine.ErrTimeout):
		return ExitTimeout
	default:
		return ExitFailure
	}
}
