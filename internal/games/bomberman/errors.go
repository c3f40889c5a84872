package bomberman

import (
	"errors"
	"fmt"
)

// Error classes surfaced by the simulation.
var (
	// ErrInvalidPlacement marks a rejected action: a target outside the grid,
	// an illegal cell, or an actor that cannot act right now. The session state
	// is left untouched.
	ErrInvalidPlacement = errors.New("bomberman: invalid placement")

	// ErrConfiguration marks a level that cannot be built from the current
	// configuration. The level does not start.
	ErrConfiguration = errors.New("bomberman: configuration error")

	// ErrDoubleTransition marks a repeated state transition (detonating an
	// exploded bomb, breaking a broken cell, killing a dead entity). Always a no-op.
	ErrDoubleTransition = errors.New("bomberman: double transition")
)

// ConfigError describes why a level could not be constructed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bomberman: configuration error: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPlacement}, args...)...)
}
