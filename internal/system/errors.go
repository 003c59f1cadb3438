package system

import (
	"errors"
	"fmt"
)

// Setup errors, wrapped in *ConfigurationError by New.
var (
	// ErrNoStars indicates a system without any star to orbit.
	ErrNoStars = errors.New("system: at least one star is required")

	// ErrUnknownStar indicates a planet referencing a star that does not exist.
	ErrUnknownStar = errors.New("system: reference to unknown star")

	// ErrUnnamed indicates a body without a display name.
	ErrUnnamed = errors.New("system: body name is empty")

	// ErrBadScale indicates a negative or non-finite visual scale.
	ErrBadScale = errors.New("system: visual scale must be finite and non-negative")

	// ErrNotPlanet indicates an operation that only applies to planets.
	ErrNotPlanet = errors.New("system: body is not a planet")

	// ErrUnknownBody indicates an id outside the arena.
	ErrUnknownBody = errors.New("system: unknown body id")
)

// ConfigurationError reports an invalid setup record. The simulation
// never starts when New returns one.
type ConfigurationError struct {
	Body    string
	Index   int
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("configuration: %v", e.Wrapped)
	}
	return fmt.Sprintf("configuration: body %q (#%d): %v", e.Body, e.Index, e.Wrapped)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}

// DegenerateStateError describes a planet found closer to its star than
// the velocity model's floor. It is logged and counted, never returned.
type DegenerateStateError struct {
	Body     string
	ID       BodyID
	Distance float64
	Floor    float64
}

func (e DegenerateStateError) Error() string {
	return fmt.Sprintf("degenerate state: %s at distance %g, clamped to %g", e.Body, e.Distance, e.Floor)
}

// SimError is recorded when a run produces a non-finite state.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
