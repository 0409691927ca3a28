package view

import (
	"sort"

	"github.com/dshills/foldview/internal/config"
	"github.com/dshills/foldview/internal/cursor"
	"github.com/dshills/foldview/internal/engine/buffer"
	"github.com/dshills/foldview/internal/layout"
	"github.com/dshills/foldview/internal/phantom"
)

// Rect is a rectangle in viewport pixel space.
type Rect struct {
	X, Y, W, H int
}

// Modifiers are the keyboard modifiers active during a pointer event.
type Modifiers struct {
	// Shift extends the current selection instead of replacing it.
	Shift bool
	// Alt adds an independent caret.
	Alt bool
}

// HitResult is the document position a pointer event resolved to.
type HitResult struct {
	// Offset is the buffer offset the point maps to.
	Offset int
	// Affinity records which side of a phantom the point fell on.
	Affinity cursor.Affinity
	// Line and Col are the origin position of Offset.
	Line int
	Col  int
	// FinalCol is the rendered column that was hit.
	FinalCol int
	// Inside reports whether the point fell on a visible cluster rather
	// than past the end of the row.
	Inside bool
	// Fold is the placeholder under the point, if any.
	Fold *phantom.PhantomText
}

// View wires a document's visual lines to a cursor and pixel-space
// hit-testing.
type View struct {
	doc      *DocLines
	cur      *cursor.Cursor
	layouts  *layout.LineCache
	metrics  layout.Metrics
	dragging bool
}

// NewView creates a view over doc. modal selects a block-caret Normal-mode
// cursor rather than an Insert caret.
func NewView(doc *DocLines, modal bool, metrics layout.Metrics) *View {
	return &View{
		doc:     doc,
		cur:     cursor.Origin(modal),
		layouts: newLayoutCache(doc, metrics),
		metrics: metrics,
	}
}

func newLayoutCache(doc *DocLines, metrics layout.Metrics) *layout.LineCache {
	tabs := layout.NewTabExpander(doc.Config().Editor.TabWidth)
	return layout.NewLineCache(tabs, metrics, 512)
}

// Doc returns the underlying document layer.
func (v *View) Doc() *DocLines {
	return v.doc
}

// Cursor returns the view's cursor.
func (v *View) Cursor() *cursor.Cursor {
	return v.cur
}

// SetConfig applies new settings, rebuilding layouts for a possibly changed
// tab width.
func (v *View) SetConfig(cfg config.Config) {
	v.doc.SetConfig(cfg)
	v.layouts = newLayoutCache(v.doc, v.metrics)
}

// Layout returns the shaped layout for a visual row.
func (v *View) Layout(row int, rl RenderLine) *layout.TextLayout {
	return v.layouts.Get(row, rl.Text)
}

// ApplyEdit routes an edit from this view's own cursor: the document and
// folds re-base, then the cursor transforms through the delta.
func (v *View) ApplyEdit(edit buffer.Edit) error {
	delta, err := v.doc.ApplyEdit(edit)
	if err != nil {
		return err
	}
	v.cur.ApplyDelta(delta)
	v.layouts.InvalidateAll()
	return nil
}

// ApplyExternalEdit routes an edit made by an outside collaborator. The
// caret jumps to the edit position nearest its old location instead of
// merely shifting.
func (v *View) ApplyExternalEdit(edit buffer.Edit) error {
	delta, err := v.doc.ApplyEdit(edit)
	if err != nil {
		return err
	}
	if nc, ok := cursor.GetFirstSelectionAfter(v.cur, v.doc.Buffer(), delta); ok {
		v.cur = nc
	} else {
		v.cur.ApplyDelta(delta)
	}
	v.layouts.InvalidateAll()
	return nil
}

// rowAt maps a pixel y to a visual row index, clamped to the document.
func (v *View) rowAt(y int) (int, []int, error) {
	starts, err := v.doc.VisualLines()
	if err != nil {
		return 0, nil, err
	}
	row := 0
	if v.metrics.LineHeight > 0 {
		row = y / v.metrics.LineHeight
	}
	if row < 0 {
		row = 0
	}
	if row >= len(starts) {
		row = len(starts) - 1
	}
	return row, starts, nil
}

// rowOfLine maps an origin line to the visual row that renders it. Lines
// hidden inside a fold map to the row the fold collapses onto.
func (v *View) rowOfLine(starts []int, line int) int {
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > line })
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// HitTest resolves a pixel point to a document position.
func (v *View) HitTest(p layout.Point) (HitResult, error) {
	row, starts, err := v.rowAt(p.Y)
	if err != nil {
		return HitResult{}, err
	}
	line := starts[row]

	rl, err := v.doc.RenderLine(line)
	if err != nil {
		return HitResult{}, err
	}
	lay := v.layouts.Get(row, rl.Text)
	fc, inside := lay.HitPoint(layout.Point{X: p.X})

	ml, err := v.doc.VisualLine(line)
	if err != nil {
		return HitResult{}, err
	}
	cp := ml.CursorPositionOfFinalCol(fc)
	offset, err := v.doc.Buffer().OffsetOfLineCol(cp.Line, cp.Col)
	if err != nil {
		// Clamped phantom columns can land past the line; fall back to the
		// end of the buffer rather than failing the event.
		offset = v.doc.Buffer().Len()
	}

	hr := HitResult{
		Offset:   offset,
		Affinity: cp.Affinity,
		Line:     cp.Line,
		Col:      cp.Col,
		FinalCol: fc,
		Inside:   inside,
	}
	if inside {
		if ph, _ := ml.PhantomOfFinalCol(fc); ph != nil && ph.Kind == phantom.KindFolded && len(ph.Text) > 0 {
			hr.Fold = ph
		}
	}
	return hr, nil
}

// PointerDown places or extends the selection. A click on a fold
// placeholder unfolds it instead.
func (v *View) PointerDown(p layout.Point, mods Modifiers) (HitResult, error) {
	hr, err := v.HitTest(p)
	if err != nil {
		return hr, err
	}
	if hr.Fold != nil && !mods.Shift && !mods.Alt {
		v.doc.ToggleFoldAt(hr.Fold.StartPosition)
		v.layouts.InvalidateAll()
		return hr, nil
	}
	v.cur.SetOffsetWithAffinity(hr.Offset, mods.Shift, mods.Alt, hr.Affinity)
	v.dragging = true
	return hr, nil
}

// PointerMove extends the selection while a drag is active.
func (v *View) PointerMove(p layout.Point) error {
	if !v.dragging {
		return nil
	}
	hr, err := v.HitTest(p)
	if err != nil {
		return err
	}
	v.cur.SetOffsetWithAffinity(hr.Offset, true, false, hr.Affinity)
	return nil
}

// PointerUp ends a drag.
func (v *View) PointerUp() {
	v.dragging = false
}

// CaretRects returns one rectangle per caret, in pixel space. A block
// cursor covers the cluster under it; otherwise a thin bar is returned.
func (v *View) CaretRects() ([]Rect, error) {
	starts, err := v.doc.VisualLines()
	if err != nil {
		return nil, err
	}
	buf := v.doc.Buffer()

	var rects []Rect
	for _, r := range v.cur.Regions() {
		line, col, err := buf.OffsetToLineCol(r.End)
		if err != nil {
			// An out-of-range region is recoverable; fall back to the
			// document start rather than failing the frame.
			line, col = 0, 0
		}
		row := v.rowOfLine(starts, line)
		ml, err := v.doc.VisualLine(starts[row])
		if err != nil {
			return nil, err
		}
		fc := ml.FinalColOfCol(line, col, !r.EndAffinity.IsForward())

		rl, err := v.doc.RenderLine(starts[row])
		if err != nil {
			return nil, err
		}
		lay := v.layouts.Get(row, rl.Text)
		x := lay.HitPosition(fc).X

		w := 2
		if v.cur.IsBlock() {
			w = v.clusterWidth(lay, fc)
		}
		rects = append(rects, Rect{
			X: x,
			Y: row * v.metrics.LineHeight,
			W: w,
			H: v.metrics.LineHeight,
		})
	}
	return rects, nil
}

// clusterWidth returns the pixel width of the cluster at fc, or one cell
// when the column is past the end of the row.
func (v *View) clusterWidth(lay *layout.TextLayout, fc int) int {
	for _, c := range lay.Cells() {
		if fc >= c.Col && fc < c.NextCol() && c.Width > 0 {
			return c.Width * v.metrics.CellWidth
		}
	}
	return v.metrics.CellWidth
}

// SelectionRects returns the highlight rectangles for every non-caret
// region, one per visual row the region crosses.
func (v *View) SelectionRects() ([]Rect, error) {
	starts, err := v.doc.VisualLines()
	if err != nil {
		return nil, err
	}
	buf := v.doc.Buffer()

	var rects []Rect
	for _, r := range v.cur.Regions() {
		if r.IsCaret() {
			continue
		}
		lo, hi := r.Min(), r.Max()

		loLine, _, err := buf.OffsetToLineCol(lo)
		if err != nil {
			continue
		}
		hiLine, _, err := buf.OffsetToLineCol(hi)
		if err != nil {
			hiLine = buf.LastLine()
		}

		for row := v.rowOfLine(starts, loLine); row <= v.rowOfLine(starts, hiLine); row++ {
			rowStart, err := buf.OffsetOfLine(starts[row])
			if err != nil {
				return nil, err
			}
			rowEnd := buf.Len()
			if row+1 < len(starts) {
				if off, err := buf.OffsetOfLine(starts[row+1]); err == nil {
					rowEnd = off
				}
			}
			a, b := lo, hi
			if a < rowStart {
				a = rowStart
			}
			if b > rowEnd {
				b = rowEnd
			}
			if a >= b {
				continue
			}

			ml, err := v.doc.VisualLine(starts[row])
			if err != nil {
				return nil, err
			}
			rl, err := v.doc.RenderLine(starts[row])
			if err != nil {
				return nil, err
			}
			lay := v.layouts.Get(row, rl.Text)

			la, ca, _ := buf.OffsetToLineCol(a)
			lb, cb, _ := buf.OffsetToLineCol(b)
			x0 := lay.HitPosition(ml.FinalColOfCol(la, ca, true)).X
			x1 := lay.HitPosition(ml.FinalColOfCol(lb, cb, true)).X
			if x1 < x0 {
				x0, x1 = x1, x0
			}
			if x1 == x0 {
				// A row whose covered span renders nothing (EOL only)
				// still gets a sliver of highlight.
				x1 = x0 + v.metrics.CellWidth/2
			}
			rects = append(rects, Rect{
				X: x0,
				Y: row * v.metrics.LineHeight,
				W: x1 - x0,
				H: v.metrics.LineHeight,
			})
		}
	}
	return rects, nil
}
