// Package tracking describes document edits and transforms positions
// through them.
//
// A Change captures one replacement: the interval it removed from the old
// text and the text it inserted. A Delta is an ordered sequence of changes
// forming one logical operation. Transformer maps offsets from the
// coordinate space before a delta to the space after it, with an explicit
// bias for offsets that sit exactly at an insertion point: with after=false
// the offset stays put ("before" the insertion), with after=true it rides
// to the end of the inserted text.
//
// Cursors, selections, and folding ranges are all re-based through this
// package after every edit.
package tracking
