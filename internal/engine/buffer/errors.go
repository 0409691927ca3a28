package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLineOutOfRange indicates a line number is beyond the last line.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrColumnOutOfRange indicates a column is beyond the end of its line.
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrIntervalInvalid indicates an invalid interval (end < start).
	ErrIntervalInvalid = errors.New("invalid interval")
)
