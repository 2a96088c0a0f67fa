package exporter

import (
	"errors"
	"fmt"
)

// Per-object errors. These are recorded by Traverse and never stop an
// export.
var (
	ErrInvalidGeometry         = errors.New("invalid geometry")
	ErrAttributeLengthMismatch = errors.New("attribute length mismatch")
	ErrInvalidTransform        = errors.New("invalid transform")
	ErrInvalidObject           = errors.New("invalid object")
)

// Writer errors. These are fatal to an export.
var (
	ErrWriterInit   = errors.New("writer initialization failed")
	ErrWriterExport = errors.New("writer export failed")
)

// ObjectError ties a per-object failure to the object's name.
type ObjectError struct {
	Object string
	Err    error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %q: %v", e.Object, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}

// ObjectFailure records an object that was left out of the document.
type ObjectFailure struct {
	Index int // position in the export list
	Name  string
	Err   error
}
