package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for scenario and parameter handling. The numerical core never
// returns errors.
var (
	// ErrUnknownParam indicates SetParam was called with a name the law does not have.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownFunction indicates a segment names an acceleration law that does not exist.
	ErrUnknownFunction = errors.New("dynamo: unknown function")

	// ErrUnknownEasing indicates a curve segment names an easing that does not exist.
	ErrUnknownEasing = errors.New("dynamo: unknown easing")

	// ErrUnknownIntegrator indicates an unsupported integration method.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrInvalidDimension indicates a vector arity outside 1..4.
	ErrInvalidDimension = errors.New("dynamo: dimension must be between 1 and 4")

	// ErrEmptyScenario indicates a scenario without segments.
	ErrEmptyScenario = errors.New("dynamo: scenario has no segments")

	// ErrInvalidFrame indicates a non-positive frame interval or duration.
	ErrInvalidFrame = errors.New("dynamo: frame interval and duration must be positive")
)

// ScenarioError wraps an error with the segment it came from.
type ScenarioError struct {
	Segment int
	Kind    string
	Wrapped error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("segment %d (%s): %v", e.Segment, e.Kind, e.Wrapped)
}

func (e *ScenarioError) Unwrap() error {
	return e.Wrapped
}
