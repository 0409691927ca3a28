package folding

import "errors"

var (
	// ErrNoFoldableRange indicates no folding range contains the offset.
	ErrNoFoldableRange = errors.New("no foldable range at offset")

	// ErrInvalidState indicates persisted fold state could not be decoded.
	ErrInvalidState = errors.New("invalid fold state")

	// ErrWrongDocument indicates persisted fold state belongs to a
	// different document than the one restoring it.
	ErrWrongDocument = errors.New("fold state for a different document")
)
