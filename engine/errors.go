package engine

import "errors"

// ErrNotInitialized is returned when stepping or measuring is attempted
// before Initialize has been called.
var ErrNotInitialized = errors.New("engine: Initialize must be called before stepping")

// InvalidConfigurationError reports a ball placement that violates the
// no-overlap or inside-container invariant, discovered at Initialize time,
// or a non-positive radius or negative mass, which AddBall rejects when
// the ball is added (Initialize does not re-check radius or mass).
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "engine: invalid configuration: " + e.Reason
}

// NumericalRegression is the panic value raised when a validated event
// resolves to a negative time delta. This indicates a scheduling or
// floating-point invariant violation and is treated as fatal rather than
// a recoverable error: the simulation is deterministic, so this can only
// mean a bug.
type NumericalRegression struct {
	GlobalTime float64
	EventTime  float64
}

func (e NumericalRegression) Error() string {
	return "engine: numerical regression: event time precedes global time"
}
