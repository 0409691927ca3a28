package cursor

import (
	"testing"

	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/engine/tracking"
)

// Line offsets: "alpha\n" at 0, "betaline\n" at 6, "xy\n" at 15.
const sampleText = "alpha\nbetaline\nxy\n"

func TestAddRegionKeepsOrderAndMerges(t *testing.T) {
	sel := NewSelection()
	sel.AddRegion(NewRegion(10, 12))
	sel.AddRegion(NewRegion(0, 2))
	sel.AddRegion(NewRegion(4, 6))
	if got := sel.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3 disjoint regions", got)
	}
	if sel.MinOffset() != 0 || sel.MaxOffset() != 12 {
		t.Errorf("bounds = [%d, %d], want [0, 12]", sel.MinOffset(), sel.MaxOffset())
	}

	// Overlap swallows everything it touches.
	sel.AddRegion(NewRegion(1, 11))
	if got := sel.Len(); got != 1 {
		t.Fatalf("Len() = %d after overlapping add, want 1", got)
	}
	first, _ := sel.First()
	if first.Min() != 0 || first.Max() != 12 {
		t.Errorf("merged region = [%d, %d], want [0, 12]", first.Min(), first.Max())
	}
}

func TestAddRegionTouchingRegions(t *testing.T) {
	sel := NewSelection()
	sel.AddRegion(NewRegion(0, 2))
	sel.AddRegion(NewRegion(2, 4))
	if got := sel.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2: touching ranges stay separate", got)
	}

	sel = NewSelection()
	sel.AddRegion(NewCaret(2))
	sel.AddRegion(NewRegion(2, 4))
	if got := sel.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1: a caret merges into a touching range", got)
	}
}

func TestSelectionApplyDeltaAroundInsert(t *testing.T) {
	sel := NewSelection()
	sel.AddRegion(NewRegion(2, 4))
	sel.AddRegion(NewRegion(10, 12))
	delta := tracking.NewDelta(tracking.NewInsertChange(6, "+++"))

	got := sel.ApplyDelta(delta, true, DriftDefault)
	regions := got.Regions()
	if regions[0].Start != 2 || regions[0].End != 4 {
		t.Errorf("region before insertion moved: %+v", regions[0])
	}
	if regions[1].Start != 13 || regions[1].End != 15 {
		t.Errorf("region after insertion = %+v, want shifted by 3", regions[1])
	}
}

func TestSelectionApplyDeltaDrift(t *testing.T) {
	sel := FromRegion(NewRegion(4, 8))
	delta := tracking.NewDelta(tracking.NewInsertChange(4, "ab"))

	inside, _ := sel.ApplyDelta(delta, true, DriftInside).First()
	if inside.Start != 4 || inside.End != 10 {
		t.Errorf("inside drift = [%d, %d], want [4, 10]", inside.Start, inside.End)
	}
	outside, _ := sel.ApplyDelta(delta, true, DriftOutside).First()
	if outside.Start != 6 || outside.End != 10 {
		t.Errorf("outside drift = [%d, %d], want [6, 10]", outside.Start, outside.End)
	}
}

func TestCaretApplyDeltaAtInsertPoint(t *testing.T) {
	sel := CaretSelection(4)
	delta := tracking.NewDelta(tracking.NewInsertChange(4, "ab"))
	after, _ := sel.ApplyDelta(delta, true, DriftDefault).First()
	if after.Start != 6 {
		t.Errorf("caret with after bias = %d, want 6", after.Start)
	}
	before, _ := sel.ApplyDelta(delta, false, DriftDefault).First()
	if before.Start != 4 {
		t.Errorf("caret with before bias = %d, want 4", before.Start)
	}
}

func TestCursorApplyDeltaClearsHoriz(t *testing.T) {
	c := New(NormalMode{Pos: 8})
	horiz := ColAt(3)
	c.Horiz = &horiz
	c.ApplyDelta(tracking.NewDelta(tracking.NewInsertChange(0, "xx")))
	if c.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", c.Offset())
	}
	if c.Horiz != nil {
		t.Error("Horiz survived an edit")
	}
}

func TestVisualApplyDeltaBiases(t *testing.T) {
	c := New(VisualMode{Start: 4, End: 8, Kind: VisualNormal})
	c.ApplyDelta(tracking.NewDelta(tracking.NewInsertChange(4, "ab")))
	m := c.Mode().(VisualMode)
	if m.Start != 4 {
		t.Errorf("anchor = %d, want 4: insertions at the anchor stay outside", m.Start)
	}
	if m.End != 10 {
		t.Errorf("active edge = %d, want 10", m.End)
	}
}

func TestEditSelectionNormalCoversGrapheme(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(NormalMode{Pos: 0})
	sel, err := c.EditSelection(buf)
	if err != nil {
		t.Fatalf("EditSelection: %v", err)
	}
	r, _ := sel.First()
	if r.Start != 0 || r.End != 1 {
		t.Errorf("region = [%d, %d], want the character under the caret", r.Start, r.End)
	}
}

func TestEditSelectionLinewise(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(VisualMode{Start: 8, End: 2, Kind: VisualLinewise})
	sel, err := c.EditSelection(buf)
	if err != nil {
		t.Fatalf("EditSelection: %v", err)
	}
	r, _ := sel.First()
	if r.Start != 0 || r.End != 15 {
		t.Errorf("region = [%d, %d], want both whole lines [0, 15]", r.Start, r.End)
	}
}

func TestEditSelectionBlockwiseClamps(t *testing.T) {
	buf := buffer.New(sampleText)
	// Block from (0,4) to (2,1): columns [1, 5) on each line.
	c := New(VisualMode{Start: 4, End: 16, Kind: VisualBlockwise})
	sel, err := c.EditSelection(buf)
	if err != nil {
		t.Fatalf("EditSelection: %v", err)
	}
	regions := sel.Regions()
	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(regions))
	}
	want := [][2]int{{1, 5}, {7, 11}, {16, 17}}
	for i, w := range want {
		if regions[i].Start != w[0] || regions[i].End != w[1] {
			t.Errorf("region %d = [%d, %d], want [%d, %d]",
				i, regions[i].Start, regions[i].End, w[0], w[1])
		}
	}
}

func TestEditSelectionBlockwiseToLineEnd(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(VisualMode{Start: 4, End: 16, Kind: VisualBlockwise})
	horiz := ColPosition{Kind: ColEnd}
	c.Horiz = &horiz
	sel, err := c.EditSelection(buf)
	if err != nil {
		t.Fatalf("EditSelection: %v", err)
	}
	regions := sel.Regions()
	want := [][2]int{{1, 5}, {7, 14}, {16, 17}}
	for i, w := range want {
		if regions[i].Start != w[0] || regions[i].End != w[1] {
			t.Errorf("region %d = [%d, %d], want [%d, %d]",
				i, regions[i].Start, regions[i].End, w[0], w[1])
		}
	}
}

func TestEditSelectionBlockwiseSkipsShortLines(t *testing.T) {
	buf := buffer.New("abcd\n\nefgh\n")
	// Columns [1, 3) over all three lines; the empty line contributes
	// nothing.
	c := New(VisualMode{Start: 1, End: buf.Len() - 3, Kind: VisualBlockwise})
	sel, err := c.EditSelection(buf)
	if err != nil {
		t.Fatalf("EditSelection: %v", err)
	}
	if got := sel.Len(); got != 2 {
		t.Errorf("got %d regions, want 2", got)
	}
}

func TestYankNormal(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(NormalMode{Pos: 6})
	data, err := c.Yank(buf)
	if err != nil {
		t.Fatalf("Yank: %v", err)
	}
	if data.Content != "b" || data.Mode != VisualNormal {
		t.Errorf("Yank = %+v, want the single character b", data)
	}
}

func TestYankInsertCaretTakesLine(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(InsertMode{Selection: CaretSelection(8)})
	data, err := c.Yank(buf)
	if err != nil {
		t.Fatalf("Yank: %v", err)
	}
	if data.Content != "betaline\n" || data.Mode != VisualLinewise {
		t.Errorf("Yank = %+v, want the whole line linewise", data)
	}
}

func TestYankBlockwise(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(VisualMode{Start: 4, End: 16, Kind: VisualBlockwise})
	data, err := c.Yank(buf)
	if err != nil {
		t.Fatalf("Yank: %v", err)
	}
	if data.Content != "lpha\netal\ny\n" || data.Mode != VisualBlockwise {
		t.Errorf("Yank = %q (%v), want line fragments joined by newlines",
			data.Content, data.Mode)
	}
}

func TestSetModeHistoryRestore(t *testing.T) {
	c := New(InsertMode{Selection: RegionSelection(2, 6)})
	c.SetMode(NormalMode{Pos: 2})
	if !c.RestorePreviousSelection() {
		t.Fatal("RestorePreviousSelection found no history")
	}
	m, ok := c.Mode().(InsertMode)
	if !ok {
		t.Fatalf("mode = %T, want InsertMode", c.Mode())
	}
	r, _ := m.Selection.First()
	if r.Start != 2 || r.End != 6 {
		t.Errorf("restored region = [%d, %d], want [2, 6]", r.Start, r.End)
	}
	if c.RestorePreviousSelection() {
		t.Error("RestorePreviousSelection restored from an empty stack")
	}
}

func TestSetOffsetNormalModify(t *testing.T) {
	c := New(NormalMode{Pos: 3})
	c.SetOffset(8, true, false)
	m, ok := c.Mode().(VisualMode)
	if !ok {
		t.Fatalf("mode = %T, want VisualMode", c.Mode())
	}
	if m.Start != 3 || m.End != 8 {
		t.Errorf("visual = [%d, %d], want anchored at the old caret", m.Start, m.End)
	}
	c.SetOffset(5, false, false)
	if !c.IsNormal() || c.Offset() != 5 {
		t.Errorf("mode = %v offset %d, want Normal(5)", c.Mode(), c.Offset())
	}
}

func TestSetOffsetInsertNewCursor(t *testing.T) {
	c := New(InsertMode{Selection: CaretSelection(2)})
	c.SetOffset(9, false, true)
	if got := c.SelectionCount(); got != 2 {
		t.Fatalf("SelectionCount() = %d, want 2", got)
	}
	if c.Offset() != 9 {
		t.Errorf("Offset() = %d, want the newly added caret", c.Offset())
	}
}

func TestSetOffsetWithAffinity(t *testing.T) {
	c := New(InsertMode{Selection: CaretSelection(0)})
	c.SetOffsetWithAffinity(4, false, false, AffinityForward)
	if c.Affinity != AffinityForward {
		t.Errorf("Affinity = %v, want forward", c.Affinity)
	}
	r, _ := c.Mode().(InsertMode).Selection.First()
	if r.EndAffinity != AffinityForward {
		t.Errorf("region affinity = %v, want forward", r.EndAffinity)
	}
}

func TestAddRegionOnModes(t *testing.T) {
	c := New(NormalMode{Pos: 0})
	c.AddRegion(3, 7, false, false)
	m, ok := c.Mode().(VisualMode)
	if !ok || m.Start != 3 || m.End != 6 {
		t.Errorf("mode = %+v, want Visual [3, 6]", c.Mode())
	}

	c = New(InsertMode{Selection: RegionSelection(0, 2)})
	c.AddRegion(10, 14, true, false)
	if got := c.SelectionCount(); got != 2 {
		t.Errorf("SelectionCount() = %d, want 2", got)
	}
}

func TestUpdateSelectionNormalClampsToLineEnd(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(NormalMode{Pos: 0})
	// Offset 5 is the newline of the first line; a block caret cannot
	// rest there.
	if err := c.UpdateSelection(buf, CaretSelection(5)); err != nil {
		t.Fatalf("UpdateSelection: %v", err)
	}
	if c.Offset() != 4 {
		t.Errorf("Offset() = %d, want clamped to the last character", c.Offset())
	}
}

func TestGetFirstSelectionAfter(t *testing.T) {
	buf := buffer.New(sampleText)
	c := New(InsertMode{Selection: CaretSelection(10)})
	delta := tracking.NewDelta(tracking.NewInsertChange(3, "xx"))
	next, ok := GetFirstSelectionAfter(c, buf, delta)
	if !ok {
		t.Fatal("GetFirstSelectionAfter found nothing")
	}
	if !next.IsInsert() || next.Offset() != 5 {
		t.Errorf("next cursor at %d, want 5, the end of the insertion", next.Offset())
	}
	if _, ok := GetFirstSelectionAfter(c, buf, tracking.Delta{}); ok {
		t.Error("GetFirstSelectionAfter produced a cursor from an empty delta")
	}
}
