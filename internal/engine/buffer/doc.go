// Package buffer provides the document collaborator for the fold/phantom
// coordinate engine: a line-indexed text store with offset and line/column
// conversion, grapheme iteration, and revision tracking.
//
// The buffer is deliberately simple. It is not a rope; the coordinate engine
// only needs fast offset<->line/column arithmetic and grapheme-safe stepping,
// both of which a line-start index over a string provides. Every conversion
// is fallible: out-of-range offsets and lines return errors rather than
// clamping silently, so callers can decide on their own fallback.
//
// Each buffer carries a unique document ID and a monotonically increasing
// revision. Asynchronous results (folding ranges, inlay hints, diagnostics)
// are stamped with the revision they were computed against and discarded
// when the buffer has moved on.
package buffer
