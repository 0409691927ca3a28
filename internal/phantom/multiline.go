package phantom

import "strings"

// CursorPosition locates a final column in origin space.
type CursorPosition struct {
	// Line and Col are the origin position the final column maps to.
	Line int
	Col  int

	// MergeCol is the matching column in merge space.
	MergeCol int

	// Gap is the distance from the queried final column to the end of
	// the run it landed in.
	Gap int

	// Affinity tells which side of a phantom the position sticks to.
	Affinity Affinity

	// OffsetOfLine is the byte offset of the first merged line.
	OffsetOfLine int
}

// MultiLine is a rendered line assembled from one or more origin lines.
// Fold placeholders splice consecutive origin lines into a single run of
// segments; all final columns are relative to the assembled line.
type MultiLine struct {
	// Line is the first origin line.
	Line int

	// OffsetOfLine is the byte offset of the first origin line.
	OffsetOfLine int

	lastLine      int
	originTextLen int
	finalTextLen  int
	segments      []Segment
}

// NewMultiLine starts a rendered line from its first origin line.
func NewMultiLine(line *Line) *MultiLine {
	return &MultiLine{
		Line:          line.Line,
		OffsetOfLine:  line.OffsetOfLine,
		lastLine:      line.Line,
		originTextLen: line.originTextLen,
		finalTextLen:  line.finalTextLen,
		segments:      append([]Segment(nil), line.segments...),
	}
}

// Merge appends a continuation line, re-basing its merge columns by the
// accumulated origin length and its final columns by the accumulated
// rendered length. Origin columns stay relative to their own line.
func (m *MultiLine) Merge(line *Line) {
	originShift := m.originTextLen
	finalShift := m.finalTextLen
	m.originTextLen += line.originTextLen
	m.finalTextLen += line.finalTextLen
	for _, seg := range line.segments {
		switch s := seg.(type) {
		case *PhantomText:
			p := *s
			p.MergeCol += originShift
			p.FinalCol += finalShift
			m.segments = append(m.segments, &p)
		case *OriginSegment:
			o := *s
			o.Cols.Merge = o.Cols.Merge.Translate(originShift)
			o.Cols.Final = o.Cols.Final.Translate(finalShift)
			m.segments = append(m.segments, &o)
		case *EmptySegment:
			e := *s
			m.segments = append(m.segments, &e)
		}
	}
	m.lastLine = line.Line
}

// LastLine returns the last origin line absorbed into this rendered line.
func (m *MultiLine) LastLine() int {
	return m.lastLine
}

// OriginTextLen returns the total origin length, line endings included.
func (m *MultiLine) OriginTextLen() int {
	return m.originTextLen
}

// FinalTextLen returns the rendered length.
func (m *MultiLine) FinalTextLen() int {
	return m.finalTextLen
}

// Segments returns the segments in render order.
func (m *MultiLine) Segments() []Segment {
	return m.segments
}

// FoldedLine returns the origin line a trailing fold placeholder continues
// on, past the lines already absorbed. The rendered line keeps absorbing
// origin lines while this reports one.
func (m *MultiLine) FoldedLine() (int, bool) {
	for _, seg := range m.segments {
		if p, ok := seg.(*PhantomText); ok {
			if next, ok := p.ContinuesOn(); ok && next > m.lastLine {
				return next, true
			}
		}
	}
	return 0, false
}

// Phantoms returns the phantoms in render order.
func (m *MultiLine) Phantoms() []*PhantomText {
	var out []*PhantomText
	for _, seg := range m.segments {
		if p, ok := seg.(*PhantomText); ok {
			out = append(out, p)
		}
	}
	return out
}

// SegmentOfFinalCol returns the segment containing the final column.
// Columns at or past the rendered length clamp to the last column.
func (m *MultiLine) SegmentOfFinalCol(finalCol int) Segment {
	if finalCol >= m.finalTextLen {
		finalCol = max(m.finalTextLen, 1) - 1
	}
	for _, seg := range m.segments {
		switch s := seg.(type) {
		case *PhantomText:
			if s.FinalCol <= finalCol && finalCol < s.NextFinalCol() {
				return s
			}
		case *OriginSegment:
			if s.Cols.Final.Contains(finalCol) {
				return s
			}
		case *EmptySegment:
			return s
		}
	}
	return m.segments[len(m.segments)-1]
}

// PhantomOfFinalCol returns the phantom covering the final column and the
// offset of the column within it, or nil when the column is origin text.
func (m *MultiLine) PhantomOfFinalCol(finalCol int) (*PhantomText, int) {
	if p, ok := m.SegmentOfFinalCol(finalCol).(*PhantomText); ok {
		return p, finalCol - p.FinalCol
	}
	return nil, 0
}

// CursorPositionOfFinalCol maps a final column back to origin space.
// Inside a phantom the position anchors to the phantom's origin column,
// with the affinity chosen by which half of the phantom was hit.
func (m *MultiLine) CursorPositionOfFinalCol(finalCol int) CursorPosition {
	if finalCol >= m.finalTextLen {
		finalCol = max(m.finalTextLen, 1) - 1
	}
	switch s := m.SegmentOfFinalCol(finalCol).(type) {
	case *PhantomText:
		aff := AffinityBackward
		if finalCol > s.FinalCol+len(s.Text)/2 {
			aff = AffinityForward
		}
		return CursorPosition{
			Line:         s.Line,
			Col:          s.NextOriginCol(),
			MergeCol:     s.NextMergeCol(),
			Gap:          s.NextFinalCol() - finalCol,
			Affinity:     aff,
			OffsetOfLine: m.OffsetOfLine,
		}
	case *OriginSegment:
		return CursorPosition{
			Line:         s.Line,
			Col:          s.OriginColOfFinalCol(finalCol),
			MergeCol:     finalCol - s.Cols.Final.Start + s.Cols.Merge.Start,
			Gap:          s.Cols.Final.End - finalCol,
			Affinity:     AffinityBackward,
			OffsetOfLine: m.OffsetOfLine,
		}
	case *EmptySegment:
		return CursorPosition{
			Line:         s.Line,
			Affinity:     AffinityBackward,
			OffsetOfLine: s.OffsetOfLine,
		}
	}
	return CursorPosition{Line: m.Line, OffsetOfLine: m.OffsetOfLine}
}

// FinalColOfCol maps an origin column to a final column. When a phantom
// sits exactly at the origin column two final columns are valid; before
// picks the left edge, otherwise the caret lands after the character.
func (m *MultiLine) FinalColOfCol(line, col int, before bool) int {
	adjust := 0
	if !before {
		adjust = 1
	}
	if len(m.segments) == 0 {
		return col
	}
	seg := m.segmentOfOriginLineCol(line, col)
	switch s := seg.(type) {
	case *PhantomText:
		if s.Col == 0 {
			return s.NextFinalCol()
		}
		return s.FinalCol
	case *OriginSegment:
		return s.Cols.Final.Start + col - s.Cols.Origin.Start + adjust
	case *EmptySegment:
		return 0
	}
	return m.finalTextLen
}

// segmentOfOriginLineCol finds the segment covering an origin position.
// Positions on a line swallowed whole by a fold resolve to the fold's
// phantom.
func (m *MultiLine) segmentOfOriginLineCol(line, col int) Segment {
	for _, seg := range m.segments {
		switch s := seg.(type) {
		case *PhantomText:
			if s.Line == line && s.Col <= col && col < s.NextOriginCol() {
				return s
			}
			if next, ok := s.ContinuesOn(); ok && line < next {
				return s
			}
		case *OriginSegment:
			if s.Line == line && s.Cols.Origin.Contains(col) {
				return s
			}
		case *EmptySegment:
			return s
		}
	}
	return nil
}

// FinalColOfMergeCol maps a merge column to a final column. It reports
// false when the merge column falls inside a folded span and so has no
// visible counterpart.
func (m *MultiLine) FinalColOfMergeCol(mergeCol int) (int, bool) {
	for _, seg := range m.segments {
		switch s := seg.(type) {
		case *PhantomText:
			if s.MergeCol <= mergeCol && mergeCol < s.NextMergeCol() {
				return 0, false
			}
		case *OriginSegment:
			if s.Cols.Merge.Contains(mergeCol) {
				return s.Cols.Final.Start + mergeCol - s.Cols.Merge.Start, true
			}
		case *EmptySegment:
			return 0, false
		}
	}
	return 0, false
}

// Adjust shifts every segment's line by lineDelta and the line start
// offset by offsetDelta, after an edit elsewhere in the document moved
// this rendered line without changing it.
func (m *MultiLine) Adjust(lineDelta, offsetDelta int) {
	m.Line += lineDelta
	m.lastLine += lineDelta
	m.OffsetOfLine += offsetDelta
	for _, seg := range m.segments {
		switch s := seg.(type) {
		case *PhantomText:
			s.Line += lineDelta
			if s.NextLine >= 0 {
				s.NextLine += lineDelta
			}
			if s.Kind == KindFolded {
				s.StartPosition.Line += lineDelta
			}
		case *OriginSegment:
			s.Line += lineDelta
		case *EmptySegment:
			s.Line += lineDelta
			s.OffsetOfLine += offsetDelta
		}
	}
}

// FinalText renders the line by interleaving phantom text with slices of
// the merged origin text, which must cover all absorbed origin lines.
func (m *MultiLine) FinalText(origin string) string {
	var b strings.Builder
	b.Grow(m.finalTextLen)
	for _, seg := range m.segments {
		switch s := seg.(type) {
		case *PhantomText:
			b.WriteString(s.Text)
		case *OriginSegment:
			start := min(s.Cols.Merge.Start, len(origin))
			end := min(s.Cols.Merge.End, len(origin))
			b.WriteString(origin[start:end])
		case *EmptySegment:
			return b.String()
		}
	}
	return b.String()
}
