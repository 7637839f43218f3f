package tuner

import "errors"

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("tuner: sample rate must be > 0")
	// ErrInvalidA4 is returned by SetA4 for non-positive or non-finite values.
	ErrInvalidA4 = errors.New("tuner: A4 reference must be positive and finite")
)
