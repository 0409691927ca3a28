// Package folding tracks fold state over a document.
//
// The Store holds the folding ranges reported by a language server together
// with their fold status. From it, read-only snapshots of the currently
// folded ranges are computed: overlapping folds resolve to the outermost
// one, and adjacent folds sharing a line can be merged into a continuous
// region. Each folded range decomposes into per-line fold placeholders for
// rendering.
package folding
