package pipeline

import (
	"errors"
	"fmt"
)

// ErrAlreadyComplete is returned by StepForwardSub when flatIndex has
// already reached totalSteps.
var ErrAlreadyComplete = errors.New("pipeline: already complete")

// ErrOutOfRangeTarget is returned by ReplayToFlat when target exceeds
// TotalSubSteps().
var ErrOutOfRangeTarget = errors.New("pipeline: replay target out of range")

// ErrDuplicatePhaseID is returned by Register when a phase's id is
// already registered.
var ErrDuplicatePhaseID = errors.New("pipeline: duplicate phase id")

// AlgorithmFailureError wraps an error returned by a phase's Execute,
// annotated with which phase and sub-step produced it.
type AlgorithmFailureError struct {
	PhaseID   string
	StepIndex int
	FlatIndex int
	Err       error
}

func (e *AlgorithmFailureError) Error() string {
	return fmt.Sprintf("pipeline: phase %q step %d (flat %d): %v", e.PhaseID, e.StepIndex, e.FlatIndex, e.Err)
}

func (e *AlgorithmFailureError) Unwrap() error { return e.Err }
