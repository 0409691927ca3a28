// Package phantom builds rendered lines out of real document text and
// virtual text, and converts columns between the three coordinate spaces
// that result:
//
//   - origin column: position within one real source line.
//   - merge column: position within the concatenation of the origin lines a
//     fold spans, after fold placeholders replace folded spans but before
//     any other virtual text.
//   - final column: position in the fully rendered line, after inlay hints,
//     diagnostics, and other virtual text are spliced in.
//
// A Line is one origin line plus its phantoms, decomposed into segments:
// runs of origin text, phantom runs, and an empty-line sentinel. A
// MultiLine concatenates one or more Lines into a single visual row; more
// than one only when a fold swallows the line break, in which case
// the appended line's columns are re-based by the running lengths.
//
// Within one line, origin, merge, and final columns are all non-decreasing
// in document order, and the difference between a segment's final and merge
// starts equals the net length contributed by the phantoms before it.
package phantom
