package engine

import "errors"

var (
	// ErrUnknownCursor is returned when an operation names a cursor ID
	// that is not in the set.
	ErrUnknownCursor = errors.New("unknown cursor")

	// ErrLastCursor is returned when removing the only cursor.
	ErrLastCursor = errors.New("cannot remove the last cursor")

	// ErrUnknownMarker is returned when an operation names a marker ID
	// that does not exist.
	ErrUnknownMarker = errors.New("unknown marker")
)
