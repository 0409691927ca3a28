package view

import "errors"

// ErrNoVisualLines indicates a document with no renderable lines, which
// cannot happen for a valid buffer and is treated as a defect.
var ErrNoVisualLines = errors.New("no visual lines")
