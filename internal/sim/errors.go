package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameBudget indicates a transition still running after MaxFrames ticks.
	ErrFrameBudget = errors.New("sim: frame budget exhausted before transition finished")

	// ErrInvalidConfig indicates a driver configuration that cannot make progress.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

// RunError records where a run stopped early.
type RunError struct {
	Frames  int
	Elapsed float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%v (after %d frames, elapsed %.3f)", e.Wrapped, e.Frames, e.Elapsed)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
