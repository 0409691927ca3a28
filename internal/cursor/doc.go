// Package cursor implements the caret and selection model.
//
// A Cursor is always in one of three modes: Normal (a block caret on one
// character), Visual (an anchored character, line, or block selection), or
// Insert (a set of non-overlapping selection regions supporting multiple
// carets). Positions are byte offsets into the document; every mode is
// re-based through edit deltas so cursors survive concurrent edits.
//
// Offsets alone cannot distinguish sitting before or after a zero-width
// piece of virtual text, so positions carry an Affinity.
package cursor
