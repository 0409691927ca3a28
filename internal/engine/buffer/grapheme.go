package buffer

import "github.com/rivo/uniseg"

// NextGraphemeOffset returns the offset count grapheme clusters forward
// from offset, clamped to limit.
func (b *Buffer) NextGraphemeOffset(offset, count, limit int) int {
	if limit > len(b.text) {
		limit = len(b.text)
	}
	if offset >= limit {
		return limit
	}
	if offset < 0 {
		offset = 0
	}
	rest := b.text[offset:limit]
	state := -1
	for count > 0 && len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		count--
	}
	return offset
}

// PrevGraphemeOffset returns the offset count grapheme clusters backward
// from offset, clamped to zero.
func (b *Buffer) PrevGraphemeOffset(offset, count int) int {
	if offset > len(b.text) {
		offset = len(b.text)
	}
	if offset <= 0 || count <= 0 {
		return 0
	}
	boundaries := graphemeBoundaries(b.text[:offset])
	idx := len(boundaries) - count
	if idx < 0 {
		return 0
	}
	return boundaries[idx]
}

// GraphemeCount returns the number of grapheme clusters in the interval.
func (b *Buffer) GraphemeCount(iv Interval) (int, error) {
	s, err := b.Slice(iv)
	if err != nil {
		return 0, err
	}
	return uniseg.GraphemeClusterCount(s), nil
}

// graphemeBoundaries returns the start offsets of every grapheme cluster in s.
func graphemeBoundaries(s string) []int {
	var out []int
	offset := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, offset)
		offset += len(cluster)
	}
	return out
}

// prevGraphemeBoundary returns the start of the grapheme cluster preceding
// offset within s, or 0 when there is none.
func prevGraphemeBoundary(s string, offset int) int {
	boundaries := graphemeBoundaries(s)
	prev := 0
	for _, b := range boundaries {
		if b >= offset {
			break
		}
		prev = b
	}
	return prev
}
