package scala

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDescription is returned when the input has no description line.
	ErrMissingDescription = errors.New("scala: missing description line")
	// ErrMissingCount is returned when the description is not followed by a
	// step count line.
	ErrMissingCount = errors.New("scala: missing step count line")
	// ErrInvalidCount is returned when the count line does not start with a
	// non-negative integer.
	ErrInvalidCount = errors.New("scala: invalid step count")
	// ErrTooFewSteps is returned by ParseSteps when fewer than two distinct
	// steps remain after normalisation.
	ErrTooFewSteps = errors.New("scala: need at least two distinct steps")
	// ErrTooLarge is returned for inputs above MaxFileSize.
	ErrTooLarge = errors.New("scala: input too large")
)

// StepError describes a step token that could not be parsed.
type StepError struct {
	Token  string
	Reason string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("scala: step %q: %s", e.Token, e.Reason)
}
