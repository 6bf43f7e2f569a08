package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks caller contract violations. Match with errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoAlternatives is returned by the fallback advisor when the anchor
	// has nothing to offer. It is distinct from an empty success.
	ErrNoAlternatives = errors.New("no alternatives available")

	// ErrNoDestination is returned by stages that need a resolved destination.
	ErrNoDestination = errors.New("no destination selected yet")

	// ErrNoFlight is returned when a stage needs a chosen flight.
	ErrNoFlight = errors.New("no flight selected yet")
)

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
