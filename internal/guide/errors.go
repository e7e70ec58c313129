package guide

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked matches any *LockedStepError via errors.Is.
	ErrLocked = errors.New("step is locked")

	// ErrUnknownStep indicates a step id outside the step universe, or a
	// branch variant offered for the wrong decision point.
	ErrUnknownStep = errors.New("unknown step")

	// ErrNestedTransition is returned when the navigator is called while
	// another transition, including its observer notification, is in flight.
	ErrNestedTransition = errors.New("nested transition")
)

// LockedStepError reports a forward move to a main step that is not unlocked.
type LockedStepError struct {
	Step MainStep
}

func (e *LockedStepError) Error() string {
	return fmt.Sprintf("%s is locked", e.Step)
}

func (e *LockedStepError) Is(target error) bool { return target == ErrLocked }
