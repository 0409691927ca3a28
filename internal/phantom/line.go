package phantom

import "sort"

// Line is one origin line combined with its phantoms, decomposed into
// segments covering the rendered line end to end.
type Line struct {
	// Line is the origin line number.
	Line int

	// OffsetOfLine is the byte offset of the line start in the document.
	OffsetOfLine int

	originTextLen int
	finalTextLen  int
	segments      []Segment
}

// NewLine builds a line from its origin length (including the line ending)
// and its phantoms. Phantoms are ordered by merge column, with the Kind
// ordering breaking ties, and interleaved with origin-text segments; an
// empty origin line yields a single empty segment.
func NewLine(line, originTextLen, offsetOfLine int, phantoms []PhantomText) *Line {
	sorted := make([]PhantomText, len(phantoms))
	copy(sorted, phantoms)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MergeCol != sorted[j].MergeCol {
			return sorted[i].MergeCol < sorted[j].MergeCol
		}
		return sorted[i].Kind < sorted[j].Kind
	})

	l := &Line{
		Line:          line,
		OffsetOfLine:  offsetOfLine,
		originTextLen: originTextLen,
	}

	finalLastEnd := 0
	originLastEnd := 0
	mergeLastEnd := 0
	// Net length phantoms have contributed so far: inserted text minus
	// replaced origin spans.
	offset := 0

	for i := range sorted {
		p := sorted[i]
		p.FinalCol = shiftCol(p.MergeCol, offset)
		if p.Kind == KindFolded {
			offset += len(p.Text) - p.FoldLen
		} else {
			offset += len(p.Text)
		}

		if finalLastEnd < p.FinalCol {
			runLen := p.FinalCol - finalLastEnd
			l.segments = append(l.segments, &OriginSegment{
				Line: p.Line,
				Cols: ColumnTriple{
					Origin: Span{Start: originLastEnd, End: originLastEnd + runLen},
					Merge:  Span{Start: mergeLastEnd, End: mergeLastEnd + runLen},
					Final:  Span{Start: finalLastEnd, End: finalLastEnd + runLen},
				},
			})
		}
		finalLastEnd = p.NextFinalCol()
		originLastEnd = p.NextOriginCol()
		mergeLastEnd = p.NextMergeCol()
		l.segments = append(l.segments, &p)
	}

	if trailing := originTextLen - originLastEnd; trailing > 0 {
		l.segments = append(l.segments, &OriginSegment{
			Line: line,
			Cols: ColumnTriple{
				Origin: Span{Start: originLastEnd, End: originLastEnd + trailing},
				Merge:  Span{Start: mergeLastEnd, End: mergeLastEnd + trailing},
				Final:  Span{Start: finalLastEnd, End: finalLastEnd + trailing},
			},
		})
	} else if originTextLen == 0 {
		l.segments = append(l.segments, &EmptySegment{
			Line:         line,
			OffsetOfLine: offsetOfLine,
		})
	}

	l.finalTextLen = shiftCol(originTextLen, offset)
	return l
}

// OriginTextLen returns the origin line length, including the line ending.
func (l *Line) OriginTextLen() int {
	return l.originTextLen
}

// FinalTextLen returns the rendered line length.
func (l *Line) FinalTextLen() int {
	return l.finalTextLen
}

// Segments returns the line's segments in render order.
func (l *Line) Segments() []Segment {
	return l.segments
}

// FoldedLine returns the origin line a trailing fold placeholder continues
// on. The rendered line keeps absorbing origin lines while this reports
// one.
func (l *Line) FoldedLine() (int, bool) {
	for _, seg := range l.segments {
		if p, ok := seg.(*PhantomText); ok {
			if next, ok := p.ContinuesOn(); ok {
				return next, true
			}
		}
	}
	return 0, false
}

// shiftCol applies a signed column shift. A negative result is an invariant
// violation: phantoms never push a column before the line start.
func shiftCol(col, offset int) int {
	rs := col + offset
	if rs < 0 {
		panic("phantom: column shifted before line start")
	}
	return rs
}
