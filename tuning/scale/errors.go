package scale

import "errors"

var (
	// ErrInvalidRoot is returned for root indices outside [0, 12).
	ErrInvalidRoot = errors.New("scale: root index must be in [0, 12)")
	// ErrNilDefinition is returned when a nil Definition is installed.
	ErrNilDefinition = errors.New("scale: nil definition")
)
