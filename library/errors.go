package library

import (
	"errors"
	"fmt"
)

var (
	// ErrExists matches a *ConflictError.
	ErrExists = errors.New("library: scale file already exists")
	// ErrOutsideLibrary is returned for paths that do not name a file in the
	// library directory.
	ErrOutsideLibrary = errors.New("library: path is outside the library")
)

// ConflictError is returned by Save when the target file exists and
// overwriting was not requested. The caller can retry with overwrite or
// pick another name through SaveAs.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("library: %s already exists", e.Path)
}

// Is reports whether target is ErrExists.
func (e *ConflictError) Is(target error) bool {
	return target == ErrExists
}
