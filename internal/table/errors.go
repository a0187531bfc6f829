package table

import (
	"errors"
)

var (
	// ErrOutOfBounds is returned when an index lies outside the current table extents.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrUnknownOperation is returned for an update that carries no known operation.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrAmbiguousOperation is returned when an encoded update carries more than one operation.
	ErrAmbiguousOperation = errors.New("update carries more than one operation")
)
