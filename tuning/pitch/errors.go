package pitch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFrequency is returned for frequencies that are not finite or
	// not above MinFrequency.
	ErrInvalidFrequency = errors.New("pitch: frequency must be finite and above 20 Hz")
	// ErrInvalidReference is returned for a non-positive or non-finite A4.
	ErrInvalidReference = errors.New("pitch: A4 reference must be positive and finite")
	// ErrUnknownNote is returned by PitchClass for unrecognised note names.
	ErrUnknownNote = errors.New("pitch: unknown note name")
)

// InputError reports rejected user input together with the reason.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("pitch: invalid input %q: %s", e.Input, e.Reason)
}
