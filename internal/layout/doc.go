// Package layout shapes rendered line text into a monospace cell grid and
// answers point <-> column queries in final-column space.
//
// A TextLayout is built from the fully rendered text of one visual line
// (origin text plus phantom insertions). Shaping is lazy: the grapheme
// clusters and their display widths are computed on the first hit-test or
// position query. Columns throughout this package are byte offsets into the
// rendered text, matching the final-column space used by the phantom package,
// so a column produced by hit-testing can be fed directly into
// CursorPositionOfFinalCol.
//
// LineCache keeps shaped layouts per visual line keyed by a content hash, so
// repeated queries against an unchanged line reuse the shaped cells.
package layout
