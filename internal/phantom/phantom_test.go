package phantom

import "testing"

// Fixtures model this document, with both brace bodies folded away:
//
//	0: fn main() {\r\n
//	1:     if true {\r\n
//	2:         println!();\r\n
//	3:     } else {\r\n
//	4:         println!();\r\n
//	5:     }\r\n
//
// Rendered, lines 1 through 5 collapse to "    if true {...} else {...}\r\n".

func foldStartLine() *Line {
	return NewLine(1, 15, 0, []PhantomText{{
		Kind:     KindFolded,
		Line:     1,
		Col:      12,
		MergeCol: 12,
		Text:     "{...}",
		FoldLen:  3,
		NextLine: 3,
	}})
}

func foldMiddleLine(folded bool) *Line {
	phantoms := []PhantomText{{
		Kind:     KindFolded,
		Line:     3,
		Col:      0,
		MergeCol: 0,
		Text:     "",
		FoldLen:  5,
		NextLine: -1,
	}}
	if folded {
		phantoms = append(phantoms, PhantomText{
			Kind:     KindFolded,
			Line:     3,
			Col:      11,
			MergeCol: 11,
			Text:     "{...}",
			FoldLen:  3,
			NextLine: 5,
		})
	}
	return NewLine(3, 14, 0, phantoms)
}

func foldEndLine() *Line {
	return NewLine(5, 7, 0, []PhantomText{{
		Kind:     KindFolded,
		Line:     5,
		Col:      0,
		MergeCol: 0,
		Text:     "",
		FoldLen:  5,
		NextLine: -1,
	}})
}

func mergedFoldedLine() *MultiLine {
	m := NewMultiLine(foldStartLine())
	m.Merge(foldMiddleLine(true))
	m.Merge(foldEndLine())
	return m
}

// hintLine models "    let a = A;\r\n" with an inlay hint ": A " after the
// binding, rendering "    let a: A  = A;\r\n".
func hintLine() *MultiLine {
	return NewMultiLine(NewLine(6, 16, 0, []PhantomText{{
		Kind:     KindInlayHint,
		Line:     6,
		Col:      9,
		MergeCol: 9,
		Text:     ": A ",
	}}))
}

func TestNewLineComputesFinalLen(t *testing.T) {
	line := foldStartLine()
	if got := line.FinalTextLen(); got != 17 {
		t.Errorf("FinalTextLen() = %d, want 17", got)
	}
	if got := line.OriginTextLen(); got != 15 {
		t.Errorf("OriginTextLen() = %d, want 15", got)
	}
	next, ok := line.FoldedLine()
	if !ok || next != 3 {
		t.Errorf("FoldedLine() = %d, %v, want 3, true", next, ok)
	}
}

func TestNewLineEmpty(t *testing.T) {
	line := NewLine(6, 0, 0, nil)
	if got := line.FinalTextLen(); got != 0 {
		t.Errorf("FinalTextLen() = %d, want 0", got)
	}
	segs := line.Segments()
	if len(segs) != 1 {
		t.Fatalf("Segments() returned %d segments, want 1", len(segs))
	}
	if _, ok := segs[0].(*EmptySegment); !ok {
		t.Errorf("segment is %T, want *EmptySegment", segs[0])
	}
}

func TestMergeRendersFoldedText(t *testing.T) {
	m := NewMultiLine(foldStartLine())
	if got := m.FinalText("    if true {\r\n"); got != "    if true {...}" {
		t.Errorf("FinalText() = %q", got)
	}

	m.Merge(foldMiddleLine(false))
	origin := "    if true {\r\n    } else {\r\n"
	want := "    if true {...} else {\r\n"
	if got := m.FinalText(origin); got != want {
		t.Errorf("FinalText() = %q, want %q", got, want)
	}
	if got := m.FinalTextLen(); got != len(want) {
		t.Errorf("FinalTextLen() = %d, want %d", got, len(want))
	}
}

func TestMergeRendersDoubleFold(t *testing.T) {
	m := NewMultiLine(foldStartLine())
	m.Merge(foldMiddleLine(true))
	origin := "    if true {\r\n    } else {\r\n"
	want := "    if true {...} else {...}"
	if got := m.FinalText(origin); got != want {
		t.Errorf("FinalText() = %q, want %q", got, want)
	}

	m.Merge(foldEndLine())
	origin = "    if true {\r\n    } else {\r\n    }\r\n"
	want = "    if true {...} else {...}\r\n"
	if got := m.FinalText(origin); got != want {
		t.Errorf("FinalText() = %q, want %q", got, want)
	}
	if got := m.FinalTextLen(); got != len(want) {
		t.Errorf("FinalTextLen() = %d, want %d", got, len(want))
	}
	if got := m.LastLine(); got != 5 {
		t.Errorf("LastLine() = %d, want 5", got)
	}
}

func TestCursorPositionOfFinalColHintLine(t *testing.T) {
	// "    let a: A  = A;\r\n"
	line := hintLine()
	cases := []struct {
		finalCol int
		wantCol  int
	}{
		{8, 8},   // 'a', before the hint
		{11, 9},  // inside the hint, anchors to its origin column
		{17, 13}, // ';' after the hint
		{30, 15}, // past the end, clamps to the last column
	}
	for _, tc := range cases {
		pos := line.CursorPositionOfFinalCol(tc.finalCol)
		if pos.Line != 6 || pos.Col != tc.wantCol {
			t.Errorf("CursorPositionOfFinalCol(%d) = (%d, %d), want (6, %d)",
				tc.finalCol, pos.Line, pos.Col, tc.wantCol)
		}
	}
}

func TestCursorPositionOfFinalColFolded(t *testing.T) {
	// "    if true {...} else {...}\r\n"
	line := mergedFoldedLine()
	cases := []struct {
		finalCol int
		wantLine int
		wantCol  int
	}{
		{0, 1, 0},   // leading space
		{9, 1, 9},   // 'u' of true
		{12, 1, 15}, // first placeholder, anchors past the replaced span
		{19, 3, 7},  // 'l' of else
		{25, 3, 14}, // second placeholder
		{29, 5, 6},  // trailing '\n'
		{40, 5, 6},  // past the end
	}
	for _, tc := range cases {
		pos := line.CursorPositionOfFinalCol(tc.finalCol)
		if pos.Line != tc.wantLine || pos.Col != tc.wantCol {
			t.Errorf("CursorPositionOfFinalCol(%d) = (%d, %d), want (%d, %d)",
				tc.finalCol, pos.Line, pos.Col, tc.wantLine, tc.wantCol)
		}
	}
}

func TestCursorPositionOfFinalColEmptyLine(t *testing.T) {
	line := NewMultiLine(NewLine(6, 0, 80, nil))
	pos := line.CursorPositionOfFinalCol(9)
	if pos.Line != 6 || pos.Col != 0 || pos.OffsetOfLine != 80 {
		t.Errorf("CursorPositionOfFinalCol(9) = %+v, want line 6 col 0 offset 80", pos)
	}
}

func TestCursorPositionAffinity(t *testing.T) {
	line := mergedFoldedLine()
	// First placeholder occupies final cols [12, 17).
	if pos := line.CursorPositionOfFinalCol(12); pos.Affinity != AffinityBackward {
		t.Errorf("left half affinity = %v, want backward", pos.Affinity)
	}
	if pos := line.CursorPositionOfFinalCol(16); pos.Affinity != AffinityForward {
		t.Errorf("right half affinity = %v, want forward", pos.Affinity)
	}
}

func TestFinalColOfColHintLine(t *testing.T) {
	// "    let a = A;\r\n" with the hint after col 9.
	line := hintLine()
	cases := []struct {
		col    int
		before bool
		want   int
	}{
		{8, true, 8},
		{8, false, 9},
		{15, true, 19},  // '\n'
		{15, false, 20},
		{18, true, 20},  // past the end
		{18, false, 20},
	}
	for _, tc := range cases {
		if got := line.FinalColOfCol(6, tc.col, tc.before); got != tc.want {
			t.Errorf("FinalColOfCol(6, %d, %v) = %d, want %d",
				tc.col, tc.before, got, tc.want)
		}
	}
}

func TestFinalColOfColFolded(t *testing.T) {
	line := mergedFoldedLine()
	cases := []struct {
		line   int
		col    int
		before bool
		want   int
	}{
		{1, 9, true, 9},   // 'u'
		{1, 9, false, 10},
		{1, 12, true, 12}, // '{', replaced by the placeholder
		{1, 12, false, 12},
		{2, 1, true, 12},  // on a fully folded line
		{2, 1, false, 12},
		{3, 1, true, 17},  // inside the leading swallowed span
		{3, 1, false, 17},
		{3, 8, true, 20},  // 's' of else
		{3, 8, false, 21},
		{3, 13, true, 23}, // replaced '\n'
		{3, 13, false, 23},
		{3, 18, true, 23}, // past line end inside the fold chain
		{3, 18, false, 23},
		{5, 1, true, 28},
		{5, 1, false, 28},
		{5, 6, true, 29},  // trailing '\n'
		{5, 6, false, 30},
		{5, 13, true, 30}, // past the end
		{5, 13, false, 30},
	}
	for _, tc := range cases {
		if got := line.FinalColOfCol(tc.line, tc.col, tc.before); got != tc.want {
			t.Errorf("FinalColOfCol(%d, %d, %v) = %d, want %d",
				tc.line, tc.col, tc.before, got, tc.want)
		}
	}
}

func TestFinalColOfColRoundTrip(t *testing.T) {
	line := mergedFoldedLine()
	// Origin positions not replaced by any placeholder must round-trip.
	positions := []struct{ line, col int }{
		{1, 0}, {1, 9}, {3, 7}, {5, 5},
	}
	for _, p := range positions {
		fc := line.FinalColOfCol(p.line, p.col, true)
		pos := line.CursorPositionOfFinalCol(fc)
		if pos.Line != p.line || pos.Col != p.col {
			t.Errorf("round trip (%d, %d) -> %d -> (%d, %d)",
				p.line, p.col, fc, pos.Line, pos.Col)
		}
	}
}

func TestFinalColOfColMonotonic(t *testing.T) {
	line := mergedFoldedLine()
	prev := -1
	for col := 0; col < 15; col++ {
		got := line.FinalColOfCol(1, col, true)
		if got < prev {
			t.Fatalf("FinalColOfCol(1, %d, true) = %d, below previous %d", col, got, prev)
		}
		prev = got
	}
}

func TestFinalColOfMergeCol(t *testing.T) {
	// Merge space: "    if true {\r\n    } else {\r\n    }\r\n"
	line := mergedFoldedLine()
	cases := []struct {
		mergeCol int
		want     int
		visible  bool
	}{
		{9, 9, true},    // 'u'
		{12, 0, false},  // '{', replaced
		{19, 0, false},  // '}' inside the leading swallowed span
		{22, 19, true},  // 'l' of else
		{26, 0, false},  // second '{'
		{35, 29, true},  // trailing '\n'
	}
	for _, tc := range cases {
		got, ok := line.FinalColOfMergeCol(tc.mergeCol)
		if ok != tc.visible || (ok && got != tc.want) {
			t.Errorf("FinalColOfMergeCol(%d) = (%d, %v), want (%d, %v)",
				tc.mergeCol, got, ok, tc.want, tc.visible)
		}
	}
}

func TestPhantomOfFinalCol(t *testing.T) {
	line := mergedFoldedLine()
	p, within := line.PhantomOfFinalCol(14)
	if p == nil {
		t.Fatal("PhantomOfFinalCol(14) returned nil inside the placeholder")
	}
	if p.Text != "{...}" || within != 2 {
		t.Errorf("PhantomOfFinalCol(14) = %q at %d, want {...} at 2", p.Text, within)
	}
	if p, _ := line.PhantomOfFinalCol(9); p != nil {
		t.Errorf("PhantomOfFinalCol(9) = %q, want nil on origin text", p.Text)
	}
}

func TestAdjustShiftsLines(t *testing.T) {
	line := mergedFoldedLine()
	line.Adjust(2, 30)
	if line.Line != 3 || line.LastLine() != 7 {
		t.Errorf("after Adjust, Line = %d LastLine = %d, want 3 and 7", line.Line, line.LastLine())
	}
	if line.OffsetOfLine != 30 {
		t.Errorf("after Adjust, OffsetOfLine = %d, want 30", line.OffsetOfLine)
	}
	pos := line.CursorPositionOfFinalCol(9)
	if pos.Line != 3 || pos.Col != 9 {
		t.Errorf("CursorPositionOfFinalCol(9) = (%d, %d), want (3, 9)", pos.Line, pos.Col)
	}
	for _, p := range line.Phantoms() {
		if p.NextLine == 3 {
			t.Errorf("phantom continuation line not shifted: %+v", p)
		}
	}
}

func TestPhantomOrderingAtSameColumn(t *testing.T) {
	// A hint and a diagnostic anchored at the same merge column render in
	// kind order: hint first.
	line := NewLine(0, 10, 0, []PhantomText{
		{Kind: KindDiagnostic, Line: 0, Col: 8, MergeCol: 8, Text: " e"},
		{Kind: KindInlayHint, Line: 0, Col: 8, MergeCol: 8, Text: ": T"},
	})
	m := NewMultiLine(line)
	got := m.FinalText("0123456789")
	if got != "01234567: T e89" {
		t.Errorf("FinalText() = %q, want %q", got, "01234567: T e89")
	}
}
