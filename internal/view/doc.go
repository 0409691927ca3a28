// Package view is the surface the UI layer consumes.
//
// DocLines combines a buffer, the folding store, and revision-stamped server
// results (inlay hints, diagnostics) into visual lines: phantom-text lines
// that splice placeholders and virtual text into the origin text. Server
// results carry the buffer revision they were computed against and are
// silently dropped when the buffer has moved on.
//
// View adds a cursor and hit-testing on top: per-visual-line render data
// with style spans, caret and selection rectangles in pixel space, and
// pointer handlers that translate a click into a buffer offset.
package view
